package sqlite

import (
	"database/sql"
	"errors"

	"ktm-hours/internal/domain"
)

const selectShiftColumns = `SELECT employee, day, start_hr, start_min, start_ampm, break, end_hr, end_min, end_ampm FROM shifts`

// SqliteShiftRepo keeps the same contract as the CSV table but updates a
// single key instead of rewriting every row.
type SqliteShiftRepo struct {
	db   *sql.DB
	path string
}

func NewSqliteShiftRepo(db *sql.DB, path string) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db, path: path}
}

func (r *SqliteShiftRepo) LoadShifts() ([]domain.ShiftRecord, error) {
	rows, err := r.db.Query(selectShiftColumns + ` ORDER BY id`)
	if err != nil {
		return nil, r.fail("load", err)
	}
	defer rows.Close()

	shifts := []domain.ShiftRecord{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, r.fail("load", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("load", err)
	}
	return shifts, nil
}

func (r *SqliteShiftRepo) GetShift(employee string, day domain.Day) (domain.ShiftRecord, bool, error) {
	row := r.db.QueryRow(selectShiftColumns+` WHERE employee = ? AND day = ?`, employee, day.String())
	s, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ShiftRecord{}, false, nil
	}
	if err != nil {
		return domain.ShiftRecord{}, false, r.fail("query", err)
	}
	return s, true, nil
}

// UpsertShift deletes then inserts so the row takes a fresh id and sorts last,
// the same order the CSV table produces.
func (r *SqliteShiftRepo) UpsertShift(shift domain.ShiftRecord) error {
	if err := shift.Validate(); err != nil {
		return err
	}
	tx, err := r.db.Begin()
	if err != nil {
		return r.fail("upsert", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shifts WHERE employee = ? AND day = ?`, shift.Employee, shift.Day.String()); err != nil {
		return r.fail("upsert", err)
	}
	_, err = tx.Exec(
		`INSERT INTO shifts (employee, day, start_hr, start_min, start_ampm, break, end_hr, end_min, end_ampm) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		shift.Employee,
		shift.Day.String(),
		shift.Start.Hour,
		shift.Start.Minute,
		string(shift.Start.Meridiem),
		shift.Break,
		shift.End.Hour,
		shift.End.Minute,
		string(shift.End.Meridiem),
	)
	if err != nil {
		return r.fail("upsert", err)
	}
	if err := tx.Commit(); err != nil {
		return r.fail("upsert", err)
	}
	return nil
}

func (r *SqliteShiftRepo) ClearShifts() error {
	if _, err := r.db.Exec(`DELETE FROM shifts`); err != nil {
		return r.fail("clear", err)
	}
	return nil
}

func (r *SqliteShiftRepo) fail(op string, err error) error {
	return &domain.StoreError{Op: op, Path: r.path, Err: err}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShift(row scanner) (domain.ShiftRecord, error) {
	var (
		s                  domain.ShiftRecord
		dayStr             string
		startAmpm, endAmpm string
	)
	err := row.Scan(
		&s.Employee, &dayStr,
		&s.Start.Hour, &s.Start.Minute, &startAmpm,
		&s.Break,
		&s.End.Hour, &s.End.Minute, &endAmpm,
	)
	if err != nil {
		return s, err
	}
	if s.Day, err = domain.ParseDay(dayStr); err != nil {
		return s, err
	}
	s.Start.Meridiem = domain.Meridiem(startAmpm)
	s.End.Meridiem = domain.Meridiem(endAmpm)
	return s, s.Validate()
}
