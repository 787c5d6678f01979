package services

import (
	"context"
	"errors"
	"testing"

	"eventenrollment/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		repoErr  error
		wantName string
		wantErr  bool
	}{
		{name: "trims name", input: "  Workshops ", wantName: "Workshops"},
		{name: "blank name", input: "   ", wantErr: true},
		{name: "repository error", input: "Talks", repoErr: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCategoryRepo()
			repo.err = tt.repoErr
			svc := NewCategoryService(repo, testTimeout)

			got, err := svc.CreateCategory(ctx, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				if tt.repoErr == nil {
					assert.ErrorIs(t, err, domain.ErrInvalidInput)
				}
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestCategoryService_ListCategories(t *testing.T) {
	ctx := context.Background()

	svc := NewCategoryService(newFakeCategoryRepo(), testTimeout)
	got, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	svc = NewCategoryService(newFakeCategoryRepo(&domain.Category{ID: 2, Name: "Talks"}, testCategory), testTimeout)
	got, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Music", got[0].Name)
}
