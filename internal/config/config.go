package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog" validate:"required"`
	Advice   AdviceConfig   `mapstructure:"advice" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the persistence gateway settings. An empty URL
// runs the server without persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// CatalogConfig locates the card catalog file.
type CatalogConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AdviceConfig holds the tunable thresholds of the advice rules.
type AdviceConfig struct {
	TwoCharRatioNum int `mapstructure:"two_char_ratio_num" validate:"gte=0"`
	TwoCharRatioDen int `mapstructure:"two_char_ratio_den" validate:"gt=0"`
	SideClusterMin  int `mapstructure:"side_cluster_min" validate:"gte=2"`
	LargeClassMin   int `mapstructure:"large_class_min" validate:"gte=1"`
}
