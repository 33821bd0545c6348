package config

import (
	"github.com/spf13/viper"
)

// Config holds the service configuration, read from config.yaml in the
// working directory with STICKERLINK_* environment overrides.
type Config struct {
	ListenAddr string
	BaseURL    string
	DataDir    string
	DBPath     string
	MaxDataLen int
	Debug      bool
}

func setDefaults() {
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("server.base-url", "http://localhost:8080")
	viper.SetDefault("storage.data-dir", "data")
	viper.SetDefault("storage.db-path", "data/stickerlink.db")
	viper.SetDefault("qr.max-data-len", 2953)
	viper.SetDefault("settings.debug", false)
}

// Load reads the configuration. A missing config file is fine; defaults
// and environment variables still apply.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("stickerlink")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		ListenAddr: viper.GetString("server.listen"),
		BaseURL:    viper.GetString("server.base-url"),
		DataDir:    viper.GetString("storage.data-dir"),
		DBPath:     viper.GetString("storage.db-path"),
		MaxDataLen: viper.GetInt("qr.max-data-len"),
		Debug:      viper.GetBool("settings.debug"),
	}, nil
}
