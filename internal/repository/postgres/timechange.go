package postgres

import (
	"database/sql"
	"time"
)

// TimeChangeRepo implements repository.TimeChangeRepository
type TimeChangeRepo struct {
	db *sql.DB
}

// NewTimeChangeRepo creates a new time-change log repository
func NewTimeChangeRepo(db *sql.DB) *TimeChangeRepo {
	return &TimeChangeRepo{db: db}
}

// CountChangesOn returns how many time changes the user made on the given
// local date.
func (r *TimeChangeRepo) CountChangesOn(userID int64, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM time_changes
		WHERE user_id = $1 AND DATE(change_time) = DATE($2)
	`
	var count int
	err := r.db.QueryRow(query, userID, day).Scan(&count)
	return count, err
}

// RecordChange appends one time-change event. Events are never mutated;
// (user_id, change_time) is the primary key.
func (r *TimeChangeRepo) RecordChange(userID int64, at time.Time) error {
	query := `
		INSERT INTO time_changes (user_id, change_time)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(query, userID, at)
	return err
}
