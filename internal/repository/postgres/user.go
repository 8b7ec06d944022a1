package postgres

import (
	"database/sql"

	"weatherbot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates user if not exists
func (r *UserRepo) EnsureUser(userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// SetCity persists the user's city for daily updates
func (r *UserRepo) SetCity(userID int64, city string) error {
	query := `UPDATE users SET city = $1 WHERE user_id = $2`
	_, err := r.db.Exec(query, city, userID)
	return err
}

// SetTime persists the user's daily trigger time. The value must already be
// validated as HH:MM by the caller.
func (r *UserRepo) SetTime(userID int64, hhmm string) error {
	query := `UPDATE users SET time = $1 WHERE user_id = $2`
	_, err := r.db.Exec(query, hhmm, userID)
	return err
}

// City returns the user's configured city, or an empty string when unset
func (r *UserRepo) City(userID int64) (string, error) {
	var city sql.NullString
	query := `SELECT city FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&city)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return city.String, nil
}

// TriggerTime returns the user's daily trigger time, falling back to the
// default for unknown users.
func (r *UserRepo) TriggerTime(userID int64) (string, error) {
	var hhmm string
	query := `SELECT time FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&hhmm)

	if err == sql.ErrNoRows {
		return domain.DefaultTriggerTime, nil
	}
	if err != nil {
		return "", err
	}

	return hhmm, nil
}

// SchedulableUsers returns every user with a configured city
func (r *UserRepo) SchedulableUsers() ([]domain.ScheduledUser, error) {
	query := `
		SELECT user_id, city FROM users
		WHERE city IS NOT NULL AND city <> ''
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.ScheduledUser
	for rows.Next() {
		var u domain.ScheduledUser
		if err := rows.Scan(&u.UserID, &u.City); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// SchedulableTimes returns the trigger time of every user with a configured city
func (r *UserRepo) SchedulableTimes() ([]domain.UserTime, error) {
	query := `
		SELECT user_id, time FROM users
		WHERE city IS NOT NULL AND city <> ''
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.UserTime
	for rows.Next() {
		var u domain.UserTime
		if err := rows.Scan(&u.UserID, &u.TriggerTime); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
