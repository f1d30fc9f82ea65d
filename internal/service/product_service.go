package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/cache"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// Pagination describes the page window in the listing response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

// ProductList is one page of products plus pagination metadata.
type ProductList struct {
	Products   []model.Product `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

// ProductInput carries the writable product fields for creation.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	CategoryID  uint
}

// ProductUpdate carries partial product changes; nil means "leave
// unchanged".
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	ImageURL    *string
	CategoryID  *uint
}

// ProductService handles product CRUD and the filtered, paginated listing.
type ProductService interface {
	ListProducts(ctx context.Context, filters repository.ProductFilters, page, limit int) (*ProductList, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, update ProductUpdate) (*model.Product, error)
	UpdateStock(ctx context.Context, id uint, quantity int) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache *cache.Client) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *productService) cacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// ListProducts returns one page of matching products. totalPages is
// ceil(total/limit); hasMore holds when further pages exist.
func (s *productService) ListProducts(ctx context.Context, filters repository.ProductFilters, page, limit int) (*ProductList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.productRepo.FindAllPaginated(ctx, filters, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ProductList{
		Products: products,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		},
	}, nil
}

// GetProduct retrieves a product by ID with caching.
func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// CreateProduct validates bounds and the referenced category, then persists.
func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if err := validateProductBounds(input.Price, input.Stock); err != nil {
		return nil, err
	}
	if err := s.checkCategoryExists(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return s.productRepo.FindByID(ctx, product.ID)
}

// UpdateProduct applies partial changes, re-validating the category only
// when it changes.
func (s *productService) UpdateProduct(ctx context.Context, id uint, update ProductUpdate) (*model.Product, error) {
	product, err := s.findForWrite(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Price != nil || update.Stock != nil {
		price := product.Price
		stock := product.Stock
		if update.Price != nil {
			price = *update.Price
		}
		if update.Stock != nil {
			stock = *update.Stock
		}
		if err := validateProductBounds(price, stock); err != nil {
			return nil, err
		}
		product.Price = price
		product.Stock = stock
	}

	if update.CategoryID != nil && *update.CategoryID != product.CategoryID {
		if err := s.checkCategoryExists(ctx, *update.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *update.CategoryID
		product.Category = nil
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.productRepo.FindByID(ctx, id)
}

// UpdateStock sets the stock level of a product.
func (s *productService) UpdateStock(ctx context.Context, id uint, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: stock must be non-negative", errors.ErrValidation)
	}
	return s.UpdateProduct(ctx, id, ProductUpdate{Stock: &quantity})
}

// DeleteProduct removes a product.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.findForWrite(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// findForWrite loads straight from the store, skipping the cache so that
// writes never act on stale rows.
func (s *productService) findForWrite(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) checkCategoryExists(ctx context.Context, categoryID uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCategoryNotFound
		}
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func validateProductBounds(price decimal.Decimal, stock int) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must be non-negative", errors.ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", errors.ErrValidation)
	}
	return nil
}
