package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventenrollment/internal/delivery/http/helpers"
	"eventenrollment/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryController_CreateCategory(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: `{"name":"Workshops"}`, wantStatus: http.StatusCreated},
		{name: "blank name", body: `{"name":"  "}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "malformed", body: `{"name":`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "store failure", body: `{"name":"Workshops"}`, fakeErr: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCategoryService{err: tt.fakeErr}
			ctrl := NewCategoryController(testLogger, fake)
			req := withUser(httptest.NewRequest(http.MethodPost, "http://test/categories", strings.NewReader(tt.body)), "user-123")
			rr := httptest.NewRecorder()
			ctrl.CreateCategory(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			var got domain.Category
			decodeData(t, envelope, &got)
			assert.Equal(t, domain.Category{ID: 1, Name: "Workshops"}, got)
		})
	}
}

func TestCategoryController_ListCategories(t *testing.T) {
	fake := &fakeCategoryService{list: []*domain.Category{{ID: 1, Name: "Music"}}}
	ctrl := NewCategoryController(testLogger, fake)
	rr := httptest.NewRecorder()
	ctrl.ListCategories(rr, httptest.NewRequest(http.MethodGet, "http://test/categories", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []domain.Category
	decodeData(t, decodeEnvelope(t, rr), &got)
	assert.Equal(t, []domain.Category{{ID: 1, Name: "Music"}}, got)
}
