package cmd

import (
	"context"
	"portfolio-server/pkg/config"
	"portfolio-server/pkg/db/sqldb"
	"portfolio-server/pkg/log"
	"portfolio-server/portfolio_server/data"
	"portfolio-server/portfolio_server/settings"
	"slices"
)

func newLogger(cnf *config.Config) log.ILogger {
	logger := log.NewLogger()
	logger.SetOutput(log.GetRotateWriter(cnf.Log.LogPath))
	logger.SetLevel(cnf.Log.Level)
	logger.SetPrintCaller(true)

	log.SetLevel(cnf.Log.Level)
	log.SetOutput(log.GetRotateWriter(cnf.Log.LogPath))
	log.SetPrintCaller(true)
	return logger
}

// openSettings returns the settings store when the store source is configured,
// nil otherwise. A store that can not be reached is not an error: lookups
// report it as unavailable and fall through to the next source, and the
// connection is retried on later lookups.
func openSettings(ctx context.Context, cnf *config.Config, logger log.ILogger) data.ISettingData {
	if !slices.Contains(cnf.Settings.Sources, settings.SourceStore) {
		return nil
	}
	d := data.NewLazySettingData(func(context.Context) (data.ISettingData, error) {
		if err := sqldb.InitDB(cnf); err != nil {
			return nil, err
		}
		return data.NewSettingDataFactory(logger, sqldb.GetDB(), cnf.Database.Driver).NewSettingData(), nil
	})
	if err := d.EnsureSchema(ctx); err != nil {
		logger.WithField("driver", cnf.Database.Driver).Warnf("settings store unavailable: %v", err)
	}
	return d
}
