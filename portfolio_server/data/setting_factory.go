package data

import (
	"database/sql"
	"portfolio-server/pkg/log"
	"time"
)

const defaultTableName = "settings"

type ISettingDataFactory interface {
	NewSettingData() ISettingData
}

type settingDataFactory struct {
	log       log.ILogger
	db        *sql.DB
	driver    string
	tableName string
	now       func() time.Time
}

func NewSettingDataFactory(log log.ILogger, db *sql.DB, driver string) ISettingDataFactory {
	return &settingDataFactory{
		log:       log,
		db:        db,
		driver:    driver,
		tableName: defaultTableName,
		now:       time.Now,
	}
}

func (f *settingDataFactory) NewSettingData() ISettingData {
	return newSettingData(f.log, f.db, f.driver, f.tableName, f.now)
}
