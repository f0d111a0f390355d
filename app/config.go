package app

import (
	"os"

	"github.com/jordan52/data-horder-dupe-finder/models"

	"github.com/spf13/viper"
)

const DefaultDBPath = "filesystem.db"

// LoadConfig reads the YAML config file at path. A missing file is not an
// error: all settings have defaults and the config file is optional.
func LoadConfig(path string) (*models.AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("server.port", 8080)
	v.SetDefault("scan.log_retention_days", 14)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg models.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
