package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the log encoding (console or json).
	Format string `mapstructure:"format" default:"console"`
	// File is an optional path that receives a copy of every log line.
	// Empty disables the file sink.
	File string `mapstructure:"file" default:"inventory_sync_log.txt"`
}
