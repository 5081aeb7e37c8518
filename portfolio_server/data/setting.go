package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"portfolio-server/pkg/db/sqldb"
	"portfolio-server/pkg/log"
	"time"
)

// NotSetValue marks a placeholder record that an operator still has to fill.
const NotSetValue = "NOT SET"

type ISettingData interface {
	EnsureSchema(ctx context.Context) error
	GetByName(ctx context.Context, name string) (SettingEntity, bool, error)
	CreatePlaceholder(ctx context.Context, name string) error
	Set(ctx context.Context, name, value string) error
	GetAll(ctx context.Context) ([]SettingEntity, error)
}

type SettingEntity struct {
	Name     string
	Value    string
	CreateAt int64
	UpdateAt int64
}

// IsSet reports whether the record holds a real value.
func (e SettingEntity) IsSet() bool {
	return e.Value != NotSetValue
}

func newSettingData(logger log.ILogger, db *sql.DB, driver, tableName string, now func() time.Time) ISettingData {
	return &settingData{
		log:       logger,
		db:        db,
		driver:    driver,
		tableName: tableName,
		now:       now,
	}
}

type settingData struct {
	log       log.ILogger
	db        *sql.DB
	driver    string
	tableName string
	now       func() time.Time
}

func (d *settingData) EnsureSchema(ctx context.Context) error {
	sqlStr := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	name VARCHAR(191) NOT NULL PRIMARY KEY,
	value TEXT NOT NULL,
	create_at BIGINT NOT NULL DEFAULT 0,
	update_at BIGINT NOT NULL DEFAULT 0
);`, d.tableName)
	if _, err := d.db.ExecContext(ctx, sqlStr); err != nil {
		d.log.Error(err)
		return err
	}
	return nil
}

func (d *settingData) GetByName(ctx context.Context, name string) (SettingEntity, bool, error) {
	sqlStr := fmt.Sprintf("select name, value, create_at, update_at from %s where name = ?;", d.tableName)
	row := d.db.QueryRowContext(ctx, sqlStr, name)
	e := SettingEntity{}
	var value sql.NullString
	err := row.Scan(&e.Name, &value, &e.CreateAt, &e.UpdateAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SettingEntity{}, false, nil
	} else if err != nil {
		d.log.Error(err)
		return SettingEntity{}, false, err
	}
	if value.Valid {
		e.Value = value.String
	}
	return e, true, nil
}

func (d *settingData) insertIgnore() string {
	if d.driver == sqldb.DriverMySQL {
		return "insert ignore"
	}
	return "insert or ignore"
}

// CreatePlaceholder adds a record with NotSetValue. An existing record is left untouched.
func (d *settingData) CreatePlaceholder(ctx context.Context, name string) error {
	now := d.now().Unix()
	sqlStr := fmt.Sprintf("%s into %s (name, value, create_at, update_at) values (?,?,?,?);", d.insertIgnore(), d.tableName)
	if _, err := d.db.ExecContext(ctx, sqlStr, name, NotSetValue, now, now); err != nil {
		d.log.Error(err)
		return err
	}
	return nil
}

// Set updates the record for name or creates it.
func (d *settingData) Set(ctx context.Context, name, value string) error {
	now := d.now().Unix()
	sqlStr := fmt.Sprintf("update %s set value=?, update_at=? where name=?;", d.tableName)
	res, err := d.db.ExecContext(ctx, sqlStr, value, now, name)
	if err != nil {
		d.log.Error(err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		d.log.Error(err)
		return err
	}
	if n > 0 {
		return nil
	}
	sqlStr = fmt.Sprintf("insert into %s (name, value, create_at, update_at) values (?,?,?,?);", d.tableName)
	if _, err := d.db.ExecContext(ctx, sqlStr, name, value, now, now); err != nil {
		d.log.Error(err)
		return err
	}
	return nil
}

func (d *settingData) GetAll(ctx context.Context) ([]SettingEntity, error) {
	sqlStr := fmt.Sprintf("select name, value, create_at, update_at from %s order by name;", d.tableName)
	rows, err := d.db.QueryContext(ctx, sqlStr)
	if err != nil {
		d.log.Error(err)
		return nil, err
	}
	defer rows.Close()
	list := make([]SettingEntity, 0)
	for rows.Next() {
		e := SettingEntity{}
		var value sql.NullString
		if err := rows.Scan(&e.Name, &value, &e.CreateAt, &e.UpdateAt); err != nil {
			d.log.Error(err)
			return nil, err
		}
		if value.Valid {
			e.Value = value.String
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
