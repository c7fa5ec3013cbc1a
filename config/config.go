// Package config loads file paths and logging settings for the catalog
// process.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup.
type Config struct {
	BooksFile string
	UsersFile string
	LogLevel  string
	LogFormat string
}

// Load reads an optional library.env from dir, then environment
// variables. Every setting has a default, so a missing config file is
// fine and the defaults match the historical behavior: both data files
// live in the working directory.
func Load(dir string) (*Config, error) {
	viper.SetDefault("BOOKS_FILE", "books.txt")
	viper.SetDefault("USERS_FILE", "users.txt")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	viper.AddConfigPath(dir)
	viper.SetConfigName("library")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		BooksFile: viper.GetString("BOOKS_FILE"),
		UsersFile: viper.GetString("USERS_FILE"),
		LogLevel:  viper.GetString("LOG_LEVEL"),
		LogFormat: viper.GetString("LOG_FORMAT"),
	}, nil
}
