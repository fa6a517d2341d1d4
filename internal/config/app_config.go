// Package config discovers, merges and initializes rptree configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/rptree/internal/utils"
)

const (
	errorWorkingDirectoryFormat  = "determine working directory: %w"
	errorResolveConfigPathFormat = "resolve configuration path %s: %w"
	errorStatConfigFormat        = "stat configuration %s: %w"
	errorConfigIsDirectoryFormat = "configuration path %s is a directory"
	errorReadConfigFormat        = "read configuration from %s: %w"
	errorDecodeConfigFormat      = "decode configuration from %s: %w"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides os.UserHomeDir when locating the global file.
	HomeDirectory string
}

// ApplicationConfiguration holds the defaults applied before command line flags.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration defines rendering and destination defaults.
// Nil pointers mean the key was not present in any file.
type TreeConfiguration struct {
	DirectoriesOnly *bool  `mapstructure:"dir_only"`
	OutputFile      string `mapstructure:"output_file"`
	Clipboard       *bool  `mapstructure:"clipboard"`
	Verbose         *bool  `mapstructure:"verbose"`
}

// LoadApplicationConfiguration loads the global file and then overlays the local one.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf(errorWorkingDirectoryFormat, err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	if workingDirectory == "" {
		absolute, err := filepath.Abs(explicitPath)
		if err != nil {
			return "", fmt.Errorf(errorResolveConfigPathFormat, explicitPath, err)
		}
		return absolute, nil
	}
	return filepath.Join(workingDirectory, explicitPath), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(errorStatConfigFormat, path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf(errorConfigIsDirectoryFormat, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorReadConfigFormat, path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorDecodeConfigFormat, path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.DirectoriesOnly != nil {
		result.DirectoriesOnly = cloneBool(override.DirectoriesOnly)
	}
	if override.OutputFile != "" {
		result.OutputFile = override.OutputFile
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	return result
}

// BoolValue dereferences value, returning fallback when it is unset.
func BoolValue(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
