// Package repository selects the ShiftRepo backend named in the config.
package repository

import (
	"fmt"

	"ktm-hours/config"
	"ktm-hours/internal/domain"
	"ktm-hours/internal/repository/csvfile"
	"ktm-hours/internal/repository/sqlite"
)

// Open returns the configured store and a function that releases it.
func Open(cfg config.StoreConfig) (domain.ShiftRepo, func() error, error) {
	switch cfg.Driver {
	case config.DriverCSV:
		return csvfile.NewCSVShiftRepo(cfg.Path), func() error { return nil }, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, &domain.StoreError{Op: "open", Path: cfg.Path, Err: err}
		}
		return sqlite.NewSqliteShiftRepo(db, cfg.Path), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
