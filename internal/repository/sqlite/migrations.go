package sqlite

import (
	"database/sql"
)

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    employee TEXT NOT NULL,
    day TEXT NOT NULL,
    start_hr INTEGER NOT NULL,
    start_min INTEGER NOT NULL,
    start_ampm TEXT NOT NULL,
    break REAL NOT NULL DEFAULT 0,
    end_hr INTEGER NOT NULL,
    end_min INTEGER NOT NULL,
    end_ampm TEXT NOT NULL
);
`

const createShiftKeyIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS shifts_employee_day ON shifts (employee, day);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createShiftsTable); err != nil {
		return err
	}
	if _, err := db.Exec(createShiftKeyIndex); err != nil {
		return err
	}
	return nil
}
