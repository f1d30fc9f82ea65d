package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/cache"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	categoryListCacheKey = "categories:all"
	categoryCacheTTL     = 5 * time.Minute
)

// CategoryInput carries the writable category fields for creation.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// CategoryUpdate carries partial category changes; nil means "leave
// unchanged".
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
}

// CategoryService handles category CRUD.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, update CategoryUpdate) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

// ListCategories returns all categories, read-through cached.
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, categoryListCacheKey); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoryListCacheKey, payload, categoryCacheTTL)
	}
	return categories, nil
}

// GetCategory retrieves a single category.
func (s *categoryService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetCategoryBySlug retrieves a category by its URL-safe identifier.
func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory persists a category after checking slug uniqueness. The
// unique index backs this check up under concurrent creates.
func (s *categoryService) CreateCategory(ctx context.Context, input CategoryInput) (*model.Category, error) {
	existing, err := s.repo.FindBySlug(ctx, input.Slug)
	if err == nil && existing != nil {
		return nil, errors.ErrSlugExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

// UpdateCategory applies partial changes, re-checking slug uniqueness only
// when the slug actually changes.
func (s *categoryService) UpdateCategory(ctx context.Context, id uint, update CategoryUpdate) (*model.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Slug != nil && *update.Slug != category.Slug {
		existing, err := s.repo.FindBySlug(ctx, *update.Slug)
		if err == nil && existing != nil {
			return nil, errors.ErrSlugExists
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check slug: %w", err)
		}
		category.Slug = *update.Slug
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

// DeleteCategory removes a category; its products go with it through the
// FK cascade.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return nil
}
