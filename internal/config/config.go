package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// Theme groups the site colours applied by the presentation layer. Changing
// them requires no code change, only a config edit.
type Theme struct {
	PrimaryColor   string `mapstructure:"primary_color"`
	SecondaryColor string `mapstructure:"secondary_color"`
	AccentColor    string `mapstructure:"accent_color"`
	TextColor      string `mapstructure:"text_color"`
}

type Configuration struct {
	// SiteName is shown in the page header and document title.
	SiteName string `mapstructure:"site_name"`
	Theme    Theme  `mapstructure:"theme"`
	// AuthMode selects the identity provider: "local" for the credential
	// ledger, "token" for external identity-provider tokens.
	AuthMode string `mapstructure:"auth_mode"`
	// StoreBackend selects where records persist: sqlite, file or memory.
	StoreBackend string `mapstructure:"store_backend"`
	// DbPath is the SQLite database file, used by the sqlite backend.
	DbPath string `mapstructure:"db_path"`
	// DataDir is the root directory of the file backend.
	DataDir string `mapstructure:"data_dir"`
	// MigrationsFolder holds the SQL migrations for the sqlite backend.
	MigrationsFolder string `mapstructure:"migrations_folder"`
	// SessionSecret keys the presentation layer's session cookies.
	SessionSecret string `mapstructure:"session_secret"`
	Port          uint16 `mapstructure:"port"`
	Debug         bool   `mapstructure:"debug"`
}

func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("sns")
	v.AutomaticEnv()

	v.SetDefault("site_name", "MySNS")
	v.SetDefault("theme.primary_color", "#007bff")
	v.SetDefault("theme.secondary_color", "#f4f4f4")
	v.SetDefault("theme.accent_color", "#ff4081")
	v.SetDefault("theme.text_color", "#333")
	v.SetDefault("auth_mode", "local")
	v.SetDefault("store_backend", StoreSQLite)
	v.SetDefault("db_path", "sns.db")
	v.SetDefault("data_dir", "data")
	v.SetDefault("migrations_folder", "migrations")
	v.SetDefault("session_secret", "u46IpCV9y5Vlur8YvODJEhgOY8m9JVE4")
	v.SetDefault("port", 8080)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		// a missing file means defaults; anything else is a real problem
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Configuration{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return Configuration{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}
