package config

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Application struct {
	Env       string `mapstructure:"env"        json:"env"`
	Host      string `mapstructure:"host"       json:"host"`
	SecretKey string `mapstructure:"secret_key" json:"-"`
	Port      int    `mapstructure:"port"       json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int    `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int    `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

// Load reads env/<filename>.yaml and environment overrides. The caller owns
// the returned config and passes it down explicitly.
func Load(c context.Context, filename string) (*Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str("tag", "config Load").
		Str("filename", filename).
		Logger()

	v := viper.New()
	v.SetConfigName(filename)
	v.AddConfigPath("./env")
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	logger.Info().Msg("reading config")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed reading config with error=%w", err)
	}
	logger.Info().Msg("read config")

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed unmarshaling config with error=%w", err)
	}
	logger.Info().Msg("unmarshaled config")

	return &cfg, nil
}
