package utils

const (
	// ApplicationName is the binary and configuration namespace name.
	ApplicationName = "rptree"
	// ConfigFileName is the name of both the global and the local configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".rptree"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// DefaultRootPath is rendered when no root directory argument is supplied.
	DefaultRootPath = "."
)

const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be constructed.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "rptree failed"
)
