package data_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/pkg/db/sqldb"
	"portfolio-server/pkg/log"
	"portfolio-server/portfolio_server/data"
)

func newTestData(t *testing.T) (*sql.DB, data.ISettingData) {
	t.Helper()
	db, err := sqldb.Open(sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	logger := log.NewLogger()
	logger.SetOutput(io.Discard)
	d := data.NewSettingDataFactory(logger, db, sqldb.DriverSQLite).NewSettingData()
	require.NoError(t, d.EnsureSchema(context.Background()))
	return db, d
}

func TestSettingData(t *testing.T) {
	ctx := context.Background()
	t.Run("should report missing record", func(t *testing.T) {
		_, d := newTestData(t)
		_, found, err := d.GetByName(ctx, "LAST_FM_API_KEY")
		assert.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("can create placeholder", func(t *testing.T) {
		// given
		_, d := newTestData(t)
		// when
		err := d.CreatePlaceholder(ctx, "LAST_FM_API_KEY")
		// then
		require.NoError(t, err)
		e, found, err := d.GetByName(ctx, "LAST_FM_API_KEY")
		if assert.NoError(t, err) && assert.True(t, found) {
			assert.Equal(t, data.NotSetValue, e.Value)
			assert.False(t, e.IsSet())
		}
	})
	t.Run("should not overwrite existing record with placeholder", func(t *testing.T) {
		// given
		_, d := newTestData(t)
		require.NoError(t, d.Set(ctx, "LAST_FM_USERNAME", "dantespe"))
		// when
		err := d.CreatePlaceholder(ctx, "LAST_FM_USERNAME")
		// then
		require.NoError(t, err)
		e, _, err := d.GetByName(ctx, "LAST_FM_USERNAME")
		if assert.NoError(t, err) {
			assert.Equal(t, "dantespe", e.Value)
		}
	})
	t.Run("can update placeholder", func(t *testing.T) {
		// given
		_, d := newTestData(t)
		require.NoError(t, d.CreatePlaceholder(ctx, "X"))
		// when
		err := d.Set(ctx, "X", "value")
		// then
		require.NoError(t, err)
		e, _, err := d.GetByName(ctx, "X")
		if assert.NoError(t, err) {
			assert.Equal(t, "value", e.Value)
			assert.True(t, e.IsSet())
		}
	})
	t.Run("can list all records", func(t *testing.T) {
		// given
		_, d := newTestData(t)
		require.NoError(t, d.Set(ctx, "B", "2"))
		require.NoError(t, d.CreatePlaceholder(ctx, "A"))
		// when
		list, err := d.GetAll(ctx)
		// then
		if assert.NoError(t, err) && assert.Len(t, list, 2) {
			assert.Equal(t, "A", list[0].Name)
			assert.Equal(t, "B", list[1].Name)
		}
	})
	t.Run("should return error when database is closed", func(t *testing.T) {
		db, d := newTestData(t)
		db.Close()
		_, _, err := d.GetByName(ctx, "X")
		assert.Error(t, err)
	})
}

func TestLazySettingData(t *testing.T) {
	ctx := context.Background()
	t.Run("should report open errors until the store comes up", func(t *testing.T) {
		// given
		_, store := newTestData(t)
		down := errors.New("connection refused")
		calls := 0
		d := data.NewLazySettingData(func(context.Context) (data.ISettingData, error) {
			calls++
			if calls == 1 {
				return nil, down
			}
			return store, nil
		})
		// when
		_, _, err := d.GetByName(ctx, "X")
		// then
		assert.ErrorIs(t, err, down)
		// when
		require.NoError(t, d.Set(ctx, "X", "value"))
		e, found, err := d.GetByName(ctx, "X")
		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "value", e.Value)
		assert.Equal(t, 2, calls)
	})
	t.Run("should pass all operations through once open", func(t *testing.T) {
		_, store := newTestData(t)
		d := data.NewLazySettingData(func(context.Context) (data.ISettingData, error) {
			return store, nil
		})
		require.NoError(t, d.EnsureSchema(ctx))
		require.NoError(t, d.CreatePlaceholder(ctx, "Y"))
		list, err := d.GetAll(ctx)
		require.NoError(t, err)
		if assert.Len(t, list, 1) {
			assert.Equal(t, data.NotSetValue, list[0].Value)
		}
	})
}
