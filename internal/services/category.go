package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventenrollment/internal/domain"
)

type categoryService struct {
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

// NewCategoryService creates a CategoryService backed by the given repository.
func NewCategoryService(categoryRepo domain.CategoryRepository, timeout time.Duration) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, contextTimeout: timeout}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidInputError("name is required")
	}
	category := &domain.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}
