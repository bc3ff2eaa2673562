package datasets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-school-insights/internal/config"
)

// Load builds the Store from the configured data source.
func Load(ctx context.Context, cfg config.DataConfig, logger zerolog.Logger) (*Store, error) {
	var (
		store *Store
		err   error
	)

	switch cfg.GetDataSource() {
	case config.DataSourceCSV:
		logger.Info().Str("folder", cfg.GetDataFolder()).Msg("loading datasets from csv")
		store, err = LoadCSVDir(cfg.GetDataFolder())
	case config.DataSourceS3:
		logger.Info().Str("bucket", cfg.GetS3Bucket()).Str("prefix", cfg.GetS3Prefix()).Msg("loading datasets from s3")
		var client S3Getter
		client, err = NewS3Client(ctx, S3Options{
			Region:    cfg.GetS3Region(),
			Endpoint:  cfg.GetS3Endpoint(),
			AccessKey: cfg.GetS3AccessKey(),
			SecretKey: cfg.GetS3SecretKey(),
		})
		if err == nil {
			store, err = LoadS3(ctx, client, cfg.GetS3Bucket(), cfg.GetS3Prefix())
		}
	case config.DataSourceSQL:
		logger.Info().Str("driver", cfg.GetDBDriver()).Msg("loading datasets from database")
		store, err = loadFromDatabase(ctx, cfg.GetDBDriver(), cfg.GetDBDSN())
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.GetDataSource())
	}
	if err != nil {
		return nil, err
	}

	for _, name := range TableNames {
		t, _ := store.Table(name)
		logger.Debug().Str("table", name).Int("rows", t.Len()).Strs("columns", t.Columns()).Msg("dataset loaded")
	}
	return store, nil
}

func loadFromDatabase(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := OpenSQL(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return LoadSQL(ctx, db)
}
