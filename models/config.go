package models

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type ScanConfig struct {
	ExcludePaths     []string `mapstructure:"exclude_paths"`
	LogRetentionDays int      `mapstructure:"log_retention_days"`
}

type AppConfig struct {
	DBPath string       `mapstructure:"db_path"`
	Server ServerConfig `mapstructure:"server"`
	Scan   ScanConfig   `mapstructure:"scan"`
}
