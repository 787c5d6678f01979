package postgres

import (
	"context"
	"database/sql"
	"testing"

	"eventenrollment/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO categories \(name\) VALUES \(\$1\) RETURNING id`).
		WithArgs("Workshops").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	c := &domain.Category{Name: "Workshops"}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	assert.Equal(t, int64(9), c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Category
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name FROM categories WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Music"))
			},
			want: &domain.Category{ID: 1, Name: "Music"},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name FROM categories WHERE id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewCategoryRepository(db).GetByID(ctx, 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCategoryRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM categories ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Music").
			AddRow(int64(2), "Talks"))

	got, err := NewCategoryRepository(db).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*domain.Category{{ID: 1, Name: "Music"}, {ID: 2, Name: "Talks"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
