package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/leadscope/internal/validate"
)

const DefaultDataPath = "sample_data/sample_companies.csv"

type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Source struct {
		Kind string `yaml:"kind"`
		// CSV path for the csv source
		Path string `yaml:"path"`
		// Table for the SQL sources
		Table string `yaml:"table"`
	} `yaml:"source"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Object     string `yaml:"object"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	OpenAI struct {
		APIKey  string `yaml:"apiKey"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"openai"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load baca file config.yaml. A missing file yields defaults; environment
// overrides are applied either way.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = validate.SourceCSV
	}
	if c.Source.Path == "" {
		c.Source.Path = DefaultDataPath
	}
	if c.Source.Table == "" {
		c.Source.Table = "companies"
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "leadscope.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Minio.Region == "" {
		c.Minio.Region = "us-east-1"
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Source.Kind, "LEADSCOPE_SOURCE")
	set(&c.Source.Path, "LEADSCOPE_DATA")
	set(&c.Database.Password, "DB_PASSWORD")
	set(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	set(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	set(&c.OpenAI.Model, "OPENAI_MODEL")
}

// Validate checks the fields the selected source needs.
func (c *Config) Validate() error {
	c.Source.Kind = strings.ToLower(c.Source.Kind)
	if err := validate.SourceKind(c.Source.Kind); err != nil {
		return err
	}
	switch c.Source.Kind {
	case validate.SourceCSV:
		if c.Source.Path == "" {
			return errors.New("source.path is required for the csv source")
		}
	case validate.SourceMinio:
		if c.Minio.Endpoint == "" || c.Minio.BucketName == "" || c.Minio.Object == "" {
			return errors.New("minio.endpoint, minio.bucketName and minio.object are required for the minio source")
		}
	case validate.SourceMySQL, validate.SourcePostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return errors.New("database.host and database.name are required for SQL sources")
		}
		return validate.TableName(c.Source.Table)
	case validate.SourceSQLite:
		return validate.TableName(c.Source.Table)
	}
	return nil
}

// port falls back to the driver's standard port.
func (c *Config) port(fallback int) int {
	if c.Database.Port == 0 {
		return fallback
	}
	return c.Database.Port
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.port(3306),
		c.Database.Name,
	)
}

// PostgresDSN builds a postgres:// URL for lib/pq.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.port(5432)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}
