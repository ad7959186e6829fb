package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs at startup. Values come from
// config.yaml and the environment (APP_* variables win).
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Redis struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"redis"`
	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	AI struct {
		APIKey     string        `mapstructure:"api_key"`
		TextModel  string        `mapstructure:"text_model"`
		ImageModel string        `mapstructure:"image_model"`
		Timeout    time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`
	Uploads struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"uploads"`
}

// Load reads configuration from path (and the working directory) plus the
// environment. A missing config file is not an error; everything has a
// default or an environment override.
func Load(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("ai.api_key", "GEMINI_API_KEY")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("ai.text_model", "gemini-1.5-flash")
	viper.SetDefault("ai.image_model", "gemini-2.0-flash-exp")
	viper.SetDefault("ai.timeout", 60*time.Second)
	viper.SetDefault("uploads.dir", "./static/uploads")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		slog.Warn("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
