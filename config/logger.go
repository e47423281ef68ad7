package config

import (
	"github.com/spf13/viper"

	"github.com/tasksphere/server/logging/logger"
)

// Logger is the logger configuration.
type Logger = logger.Config

// getLogger returns the logger config.
func getLogger(v *viper.Viper) *Logger {
	return &Logger{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
