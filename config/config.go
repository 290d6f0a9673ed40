package config

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read relative to the working directory.
const DefaultEnvFile = ".env"

const (
	secretDigits = "1234567890"
	secretLength = 6
)

// Config holds the settings resolved once at startup. A variable that is set,
// even to an empty string, is used verbatim; envDefault only applies when the
// variable is missing. DatabaseURL is derived from the Postgres fields.
type Config struct {
	// An empty PORT still falls back to the default.
	ListenAddr string `env:"PORT" envDefault:":3000"`

	JWTSecretKey string `env:"JWT_SECRET_KEY"`
	ChefUsername string `env:"CHEF_USERNAME" envDefault:"chef"`

	// Nil when JWT_VERIFY_SIGNATURE is not set.
	JWTVerifySignature *string `env:"JWT_VERIFY_SIGNATURE"`

	PostgresUser     string `env:"POSTGRES_USER" envDefault:"admin"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"password"`
	PostgresServer   string `env:"POSTGRES_SERVER" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"restaurant"`

	DatabaseURL string

	secretGenerated bool
}

// Load reads .env from the working directory and resolves the config from the
// process environment. It panics if the environment cannot be parsed.
func Load() *Config {
	cfg, err := LoadFile(DefaultEnvFile)
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadFile merges path into the process environment without overriding
// variables that are already set, then resolves the config. A missing or
// unparsable file leaves the environment as it was.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load(path)

	return Parse(processEnviron())
}

// Parse resolves the config from environ alone, leaving the process
// environment untouched. A nil environ falls back to the process environment.
func Parse(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = processEnviron()
	}

	var cfg Config

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// env substitutes defaults for empty values and skips empty pointers.
	for key, field := range cfg.verbatimFields() {
		if v, ok := environ[key]; ok && v == "" {
			*field = ""
		}
	}
	if v, ok := environ["JWT_VERIFY_SIGNATURE"]; ok && cfg.JWTVerifySignature == nil {
		cfg.JWTVerifySignature = &v
	}

	if _, ok := environ["JWT_SECRET_KEY"]; !ok {
		cfg.JWTSecretKey = GenerateSecret()
		cfg.secretGenerated = true
	}

	cfg.DatabaseURL = fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresServer,
		cfg.PostgresPort,
		cfg.PostgresDB,
	)

	return &cfg, nil
}

func (c *Config) verbatimFields() map[string]*string {
	return map[string]*string{
		"JWT_SECRET_KEY":    &c.JWTSecretKey,
		"CHEF_USERNAME":     &c.ChefUsername,
		"POSTGRES_USER":     &c.PostgresUser,
		"POSTGRES_PASSWORD": &c.PostgresPassword,
		"POSTGRES_SERVER":   &c.PostgresServer,
		"POSTGRES_PORT":     &c.PostgresPort,
		"POSTGRES_DB":       &c.PostgresDB,
	}
}

func processEnviron() map[string]string {
	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}

	return environ
}

// GenerateSecret returns a 6-digit numeric string. It is not meant to resist
// brute force.
func GenerateSecret() string {
	b := make([]byte, secretLength)
	for i := range b {
		b[i] = secretDigits[rand.Intn(len(secretDigits))]
	}

	return string(b)
}

// SecretGenerated reports whether JWTSecretKey came from GenerateSecret.
func (c *Config) SecretGenerated() bool {
	return c.secretGenerated
}

// VerifySignature reports whether JWT_VERIFY_SIGNATURE holds a true value as
// understood by strconv.ParseBool.
func (c *Config) VerifySignature() bool {
	if c.JWTVerifySignature == nil {
		return false
	}

	v, err := strconv.ParseBool(*c.JWTVerifySignature)
	if err != nil {
		return false
	}

	return v
}
