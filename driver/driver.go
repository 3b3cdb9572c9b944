package driver

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"restaurant-reviews/configs"
)

// Pool size matches the original deployment; excess requests queue on the
// pool rather than being rejected.
const maxConns = 10

// ConnectDB opens the MySQL pool. The caller owns the handle: open it at
// process start, close it on shutdown.
func ConnectDB(cfg *configs.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return db, nil
}
