package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"portfolio-server/pkg/config"
	"portfolio-server/pkg/log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

var db *sql.DB

// Open opens and pings a database for one of the supported drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is empty")
	}
	switch driver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
	d, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return d, nil
}

func InitDB(cnf *config.Config) error {
	d, err := Open(cnf.Database.Driver, cnf.Database.DSN)
	if err != nil {
		return err
	}
	if cnf.Database.Driver == DriverSQLite {
		// a single writer avoids "database is locked" errors
		d.SetMaxOpenConns(1)
	} else {
		d.SetMaxOpenConns(cnf.Database.MaxOpenConn)
		d.SetMaxIdleConns(cnf.Database.MaxIdleConn)
	}
	d.SetConnMaxLifetime(time.Second * time.Duration(cnf.Database.MaxLifeTime))
	db = d
	log.WithField("driver", cnf.Database.Driver).Info("init database success")
	return nil
}

func GetDB() *sql.DB {
	return db
}
