package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/config"
	"github.com/bryanwahyu/leadscope/internal/domain/briefing"
	"github.com/bryanwahyu/leadscope/internal/domain/companies"
	"github.com/bryanwahyu/leadscope/internal/infra/ai/openai"
	"github.com/bryanwahyu/leadscope/internal/infra/db"
	"github.com/bryanwahyu/leadscope/internal/infra/db/mysql"
	"github.com/bryanwahyu/leadscope/internal/infra/db/postgres"
	"github.com/bryanwahyu/leadscope/internal/infra/db/sqlite"
	"github.com/bryanwahyu/leadscope/internal/infra/source/csvfile"
	minioStore "github.com/bryanwahyu/leadscope/internal/infra/storage"
	"github.com/bryanwahyu/leadscope/internal/validate"
)

// closeFunc releases whatever openSource acquired.
type closeFunc func() error

func noClose() error { return nil }

// currentConfig returns the loaded config, or defaults when commands run
// without the root pre-run (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// openSource builds the dataset source selected in config. Nothing is read
// or connected until the source is loaded.
func openSource(c *config.Config) (companies.Source, closeFunc, error) {
	switch c.Source.Kind {
	case validate.SourceCSV:
		return csvfile.NewSource(c.Source.Path), noClose, nil

	case validate.SourceMinio:
		store, err := minioStore.New(
			c.Minio.Endpoint,
			c.Minio.Region,
			c.Minio.BucketName,
			c.Minio.Object,
			c.Minio.AccessKey,
			c.Minio.SecretKey,
			c.Minio.UseSSL,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("minio init error: %w", err)
		}
		return store, noClose, nil

	case validate.SourceMySQL:
		loc := fmt.Sprintf("mysql://%s/%s/%s", c.Database.Host, c.Database.Name, c.Source.Table)
		repo, err := db.NewCompanyRepository(mysql.Opener(c.MySQLDSN()), c.Source.Table, loc, mysql.IsMissing)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case validate.SourcePostgres:
		loc := fmt.Sprintf("postgres://%s/%s/%s", c.Database.Host, c.Database.Name, c.Source.Table)
		repo, err := db.NewCompanyRepository(postgres.Opener(c.PostgresDSN()), c.Source.Table, loc, postgres.IsMissing)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil

	case validate.SourceSQLite:
		repo, err := db.NewCompanyRepository(sqlite.Opener(c.SQLite.Path), c.Source.Table, c.SQLite.Path, sqlite.IsMissing)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported source: %s", c.Source.Kind)
}

// newBriefer returns nil when no API key is configured; the research report
// then prints that talking points are unavailable.
func newBriefer(c *config.Config) briefing.Briefer {
	client, err := openai.NewClient(c.OpenAI.APIKey, c.OpenAI.Model, c.OpenAI.BaseURL)
	if err != nil {
		if !errors.Is(err, briefing.ErrNotConfigured) {
			log().Warn("openai client init failed", zap.Error(err))
		}
		return nil
	}
	return client
}

func log() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
