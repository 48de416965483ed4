// Package config loads the server configuration from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SCENE_SERVER_"

// Scene source kinds.
const (
	SourceFixture = "fixture"
	SourceFile    = "file"
	SourceMongo   = "mongo"
)

type Config struct {
	Host string `env:"HOST" envDefault:"127.0.0.1" validate:"required"`
	Port int    `env:"PORT" envDefault:"5000" validate:"min=1,max=65535"`
	// Debug only lowers the log level; there is no reloading.
	Debug       bool     `env:"DEBUG"`
	Development bool     `env:"DEVELOPMENT"`
	LogOutputs  []string `env:"LOG_OUTPUTS" envSeparator:"," envDefault:"stdout"`

	StaticDir    string `env:"STATIC_DIR" envDefault:"client"`
	CORSOrigins  string `env:"CORS_ORIGINS" envDefault:"*"`
	EnableEvents bool   `env:"ENABLE_EVENTS"`
	Strict       bool   `env:"STRICT"`

	Source          string `env:"SOURCE" envDefault:"fixture" validate:"oneof=fixture file mongo"`
	SceneFile       string `env:"SCENE_FILE" validate:"required_if=Source file"`
	MongoURI        string `env:"MONGO_URI" validate:"required_if=Source mongo"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"scenedb"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"scenes"`
	SceneID         string `env:"SCENE_ID" validate:"required_if=Source mongo"`

	// EventFile replaces the built-in /event document when set.
	EventFile string `env:"EVENT_FILE"`
}

var validate = validator.New()

// Load reads envFile into the environment if it exists, then parses and validates the configuration.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Address returns host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
