package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the encoding: "json" (production) or "console".
	Format string `mapstructure:"format" default:"json"`
}
