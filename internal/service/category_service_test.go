package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storefront/internal/errors"
	"storefront/internal/model"
)

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func TestCategoryService_ListCategories(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Phones", Slug: "phones"},
		{ID: 2, Name: "Laptops", Slug: "laptops"},
	}, nil)

	svc := NewCategoryService(mockRepo, nil)
	categories, err := svc.ListCategories(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_GetCategory(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1, Slug: "phones"}, nil)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.GetCategory(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "phones", category.Slug)
	})

	t.Run("missing id", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.GetCategory(context.Background(), 9)

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, category)
	})

	t.Run("by slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "phones").Return(&model.Category{ID: 1, Slug: "phones"}, nil)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.GetCategoryBySlug(context.Background(), "phones")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), category.ID)
	})

	t.Run("missing slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.GetCategoryBySlug(context.Background(), "nope")

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, category)
	})
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("creates with a fresh slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "phones").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Phones", Slug: "phones"})

		assert.NoError(t, err)
		assert.Equal(t, "phones", category.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "phones").Return(&model.Category{ID: 1, Slug: "phones"}, nil)

		svc := NewCategoryService(mockRepo, nil)
		category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Phones", Slug: "phones"})

		assert.Equal(t, errors.ErrSlugExists, err)
		assert.Nil(t, category)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCategoryService(mockRepo, nil)
		name := "Renamed"
		category, err := svc.UpdateCategory(context.Background(), 9, CategoryUpdate{Name: &name})

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, category)
	})

	t.Run("unchanged slug skips the uniqueness check", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1, Name: "Phones", Slug: "phones"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := NewCategoryService(mockRepo, nil)
		slug := "phones"
		name := "Smartphones"
		category, err := svc.UpdateCategory(context.Background(), 1, CategoryUpdate{Name: &name, Slug: &slug})

		assert.NoError(t, err)
		assert.Equal(t, "Smartphones", category.Name)
		mockRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
	})

	t.Run("new slug must be free", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1, Slug: "phones"}, nil)
		mockRepo.On("FindBySlug", mock.Anything, "laptops").Return(&model.Category{ID: 2, Slug: "laptops"}, nil)

		svc := NewCategoryService(mockRepo, nil)
		slug := "laptops"
		category, err := svc.UpdateCategory(context.Background(), 1, CategoryUpdate{Slug: &slug})

		assert.Equal(t, errors.ErrSlugExists, err)
		assert.Nil(t, category)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewCategoryService(mockRepo, nil)
		err := svc.DeleteCategory(context.Background(), 9)

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an existing category", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1, Slug: "phones"}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		svc := NewCategoryService(mockRepo, nil)
		err := svc.DeleteCategory(context.Background(), 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
