// Package config reads per-binary settings from the environment, after an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server configures the player web server.
type Server struct {
	Addr         string        `env:"NOVEL_ADDR" envDefault:":8080"`
	Tenant       string        `env:"NOVEL_TENANT" envDefault:"dropshipping"`
	Scenario     string        `env:"NOVEL_SCENARIO" envDefault:"main"`
	FunctionsURL string        `env:"NOVEL_FUNCTIONS_URL" envDefault:"http://localhost:8081"`
	AssetBaseURL string        `env:"NOVEL_ASSET_BASE_URL"`
	CallTimeout  time.Duration `env:"NOVEL_CALL_TIMEOUT" envDefault:"0s"`
	TemplatesDir string        `env:"NOVEL_TEMPLATES_DIR" envDefault:"templates"`
	SessionIdle  time.Duration `env:"NOVEL_SESSION_IDLE" envDefault:"2h"`
	MediaDir     string        `env:"NOVEL_MEDIA_DIR"`
}

// Functions configures the callable backend.
type Functions struct {
	Addr   string `env:"NOVEL_FUNCTIONS_ADDR" envDefault:":8081"`
	DBPath string `env:"NOVEL_DB_PATH" envDefault:"data/novel.db"`
	Debug  bool   `env:"NOVEL_DEBUG" envDefault:"false"`
}

// Importer configures the bulk importer. File paths come from flags.
type Importer struct {
	DBPath string `env:"NOVEL_DB_PATH" envDefault:"data/novel.db"`
	Tenant string `env:"NOVEL_TENANT" envDefault:"dropshipping"`
}

// LoadDotEnv reads .env into the environment when present. Variables
// already set win.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ParseEnv fills target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads the player server settings.
func LoadServer() (Server, error) {
	LoadDotEnv()
	var c Server
	err := ParseEnv(&c)
	return c, err
}

// LoadFunctions reads the callable backend settings.
func LoadFunctions() (Functions, error) {
	LoadDotEnv()
	var c Functions
	err := ParseEnv(&c)
	return c, err
}

// LoadImporter reads the importer settings.
func LoadImporter() (Importer, error) {
	LoadDotEnv()
	var c Importer
	err := ParseEnv(&c)
	return c, err
}
