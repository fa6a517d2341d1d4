// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rptree/internal/config"
	"github.com/temirov/rptree/internal/presenter"
	"github.com/temirov/rptree/internal/services/clipboard"
	"github.com/temirov/rptree/internal/utils"
)

const (
	directoriesOnlyFlagName = "dir-only"
	directoriesOnlyShort    = "d"
	outputFileFlagName      = "output-file"
	outputFileShort         = "o"
	copyFlagName            = "copy"
	configFlagName          = "config"
	verboseFlagName         = "verbose"
	verboseShort            = "v"
	versionFlagName         = "version"
	globalFlagName          = "global"
	forceFlagName           = "force"

	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName + " [ROOT_DIR]"
	rootShortDescription = "render a directory tree diagram"
	rootLongDescription  = `rptree prints the directory tree rooted at ROOT_DIR (default ".").
Directories are listed before files and each group is sorted by name.
Use --output-file to save the tree wrapped in a markdown code block, or --copy to place that block on the clipboard.`
	rootUsageExample = `  # Render the current directory
  rptree

  # Render directories only and save the result
  rptree ./project -d -o tree.md`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./config.yaml, or to ~/.rptree/config.yaml with --global.`

	directoriesOnlyFlagDescription = "generate a directory-only tree"
	outputFileFlagDescription      = "write the tree to a file wrapped in a markdown code block"
	copyFlagDescription            = "copy the tree to the clipboard wrapped in a markdown code block"
	configFlagDescription          = "path to a configuration file"
	verboseFlagDescription         = "log traversal details"
	versionFlagDescription         = "display application version"
	globalFlagDescription          = "write the global configuration"
	forceFlagDescription           = "overwrite an existing configuration"

	configurationWrittenFormat = "configuration written to %s\n"
	treeWrittenMessage         = "tree written"
)

var (
	errConflictingDestinations = errors.New("--output-file and --copy cannot be used together")
	errClipboardUnavailable    = errors.New("no clipboard utility is available on this system")
)

// clipboardService is the clipboard capability the CLI depends on.
type clipboardService interface {
	clipboard.Copier
	Available() bool
}

// environment carries the collaborators a command run needs.
type environment struct {
	logger        *zap.Logger
	clipboard     clipboardService
	homeDirectory string
	verboseLogger func() (*zap.Logger, error)
}

// renderOptions holds flag values of the root command.
type renderOptions struct {
	directoriesOnly bool
	outputFile      string
	copyToClipboard bool
	configPath      string
	verbose         bool
	showVersion     bool
}

// renderSettings are the effective values after configuration and flags are combined.
type renderSettings struct {
	directoriesOnly bool
	outputFile      string
	copyToClipboard bool
	verbose         bool
}

// Execute runs the rptree application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(environment{
		logger:        logger,
		clipboard:     clipboard.NewService(),
		verboseLogger: utils.NewVerboseLogger,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(env environment) *cobra.Command {
	if env.logger == nil {
		env.logger = zap.NewNop()
	}
	var options renderOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			rootPath := utils.DefaultRootPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runRender(command, env, options, rootPath)
		},
	}

	flagSet := rootCommand.Flags()
	registerBooleanFlag(flagSet, &options.directoriesOnly, directoriesOnlyFlagName, directoriesOnlyShort, false, directoriesOnlyFlagDescription)
	flagSet.StringVarP(&options.outputFile, outputFileFlagName, outputFileShort, "", outputFileFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, verboseShort, false, verboseFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(env))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(env environment) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:        target,
				Force:         force,
				HomeDirectory: env.homeDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// runRender resolves settings, selects a sink and presents the tree.
func runRender(command *cobra.Command, env environment, options renderOptions, rootPath string) error {
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configPath,
		HomeDirectory:    env.homeDirectory,
	})
	if configurationError != nil {
		return configurationError
	}
	settings := resolveSettings(command, options, configuration.Tree)

	logger := env.logger
	if settings.verbose && env.verboseLogger != nil {
		verboseLogger, loggerError := env.verboseLogger()
		if loggerError != nil {
			return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
		}
		defer func() { _ = verboseLogger.Sync() }()
		logger = verboseLogger
	}

	sink, sinkError := selectSink(command, env, settings)
	if sinkError != nil {
		return sinkError
	}
	if presentError := presenter.NewPresenter(logger).Present(rootPath, settings.directoriesOnly, sink); presentError != nil {
		return presentError
	}
	if sink.Kind() != presenter.SinkKindTerminal {
		logger.Info(treeWrittenMessage,
			zap.String("root", rootPath),
			zap.Stringer("destination", sink.Kind()),
			zap.String("path", settings.outputFile),
		)
	}
	return nil
}

// resolveSettings prefers flags set on the command line, then configuration values.
func resolveSettings(command *cobra.Command, options renderOptions, tree config.TreeConfiguration) renderSettings {
	flags := command.Flags()
	settings := renderSettings{
		directoriesOnly: config.BoolValue(tree.DirectoriesOnly, false),
		outputFile:      tree.OutputFile,
		copyToClipboard: config.BoolValue(tree.Clipboard, false),
		verbose:         config.BoolValue(tree.Verbose, false),
	}
	if flags.Changed(directoriesOnlyFlagName) {
		settings.directoriesOnly = options.directoriesOnly
	}
	if flags.Changed(outputFileFlagName) {
		settings.outputFile = options.outputFile
	}
	if flags.Changed(copyFlagName) {
		settings.copyToClipboard = options.copyToClipboard
	}
	if flags.Changed(verboseFlagName) {
		settings.verbose = options.verbose
	}
	return settings
}

func selectSink(command *cobra.Command, env environment, settings renderSettings) (presenter.Sink, error) {
	switch {
	case settings.outputFile != "" && settings.copyToClipboard:
		return nil, errConflictingDestinations
	case settings.outputFile != "":
		return presenter.NewFileSink(settings.outputFile), nil
	case settings.copyToClipboard:
		if env.clipboard == nil || !env.clipboard.Available() {
			return nil, errClipboardUnavailable
		}
		return presenter.NewClipboardSink(env.clipboard), nil
	default:
		return presenter.NewTerminalSink(command.OutOrStdout()), nil
	}
}
