package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
	PollInterval() time.Duration
	Permission() string
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "store: reading .env: %v\n", err)
	}

	viper.SetDefault("path", "~/.planner.db")
	viper.SetDefault("poll", "10s")
	viper.SetDefault("notifications.permission", "auto")
	viper.SetConfigName(".planner") // .yaml is implicit
	viper.SetEnvPrefix("PLANNER")
	viper.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expanding path: %w", err)
	}
	poll := viper.GetDuration("poll")
	if poll <= 0 {
		poll = 10 * time.Second
	}

	return &fileConfig{
		Path:          path,
		Poll:          poll,
		Notifications: viper.GetString("notifications.permission"),
	}, nil
}

type fileConfig struct {
	Path          string        `json:"path"`
	Poll          time.Duration `json:"poll"`
	Notifications string        `json:"notifications"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) PollInterval() time.Duration {
	return f.Poll
}

func (f *fileConfig) Permission() string {
	return f.Notifications
}
