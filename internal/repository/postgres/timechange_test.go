package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTimeChangeRepo_CountChangesOn(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedCount int
		expectedError bool
	}{
		{
			name:          "no changes today",
			userID:        123,
			mockRows:      sqlmock.NewRows([]string{"count"}).AddRow(0),
			expectedCount: 0,
		},
		{
			name:          "at the limit",
			userID:        123,
			mockRows:      sqlmock.NewRows([]string{"count"}).AddRow(3),
			expectedCount: 3,
		},
		{
			name:          "query error",
			userID:        456,
			mockError:     fmt.Errorf("connection lost"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewTimeChangeRepo(db)

			day := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

			query := "SELECT COUNT\\(\\*\\) FROM time_changes WHERE user_id = \\$1 AND DATE\\(change_time\\) = DATE\\(\\$2\\)"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID, day).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID, day).WillReturnRows(tt.mockRows)
			}

			count, err := repo.CountChangesOn(tt.userID, day)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTimeChangeRepo_RecordChange(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewTimeChangeRepo(db)

	userID := int64(123)
	at := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO time_changes").
		WithArgs(userID, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.RecordChange(userID, at)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
