package model

import (
	"errors"

	"cadvault/backend/common"

	"github.com/burugo/thing"
	"github.com/burugo/thing/drivers/db/sqlite"
)

// ErrRecordNotFound is returned by lookups that resolve to no row. Notably,
// an owner-scoped file lookup returns it for another owner's file as well, so
// "not found" never leaks existence.
var ErrRecordNotFound = errors.New("record_not_found")

var dbAdapter *sqlite.SQLiteAdapter

// InitDB configures the thing ORM against the sqlite database from cfg, runs
// migrations and initializes the per-model handles.
func InitDB(cfg *common.Config) error {
	var err error
	dbAdapter, err = sqlite.NewSQLiteAdapter(cfg.DatabasePath)
	if err != nil {
		return err
	}
	if err = thing.Configure(dbAdapter, nil); err != nil {
		return err
	}
	if err = thing.AutoMigrate(&User{}, &CADFile{}); err != nil {
		return err
	}
	if err = UserInit(); err != nil {
		return err
	}
	if err = FileInit(); err != nil {
		return err
	}
	common.SysLog("database initialized: " + cfg.DatabasePath)
	return nil
}

func CloseDB() error {
	if dbAdapter == nil {
		return nil
	}
	return dbAdapter.Close()
}
