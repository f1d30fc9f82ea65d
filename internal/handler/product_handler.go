package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/repository"
	"storefront/internal/service"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Description string          `json:"description" validate:"max=5000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url,max=500"`
	CategoryID  uint            `json:"categoryId" validate:"required"`
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string          `json:"imageUrl" validate:"omitempty,url,max=500"`
	CategoryID  *uint            `json:"categoryId"`
}

// List godoc
// @Summary List products with filters and pagination
// @Tags products
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param categoryId query int false "Filter by category"
// @Param search query string false "Substring match on name"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 10)

	filters := repository.ProductFilters{
		Search: c.QueryParam("search"),
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return respondValidation(c, "invalid categoryId")
		}
		categoryID := uint(id)
		filters.CategoryID = &categoryID
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return respondValidation(c, "invalid minPrice")
		}
		filters.MinPrice = &min
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return respondValidation(c, "invalid maxPrice")
		}
		filters.MaxPrice = &max
	}

	list, err := h.productService.ListProducts(c.Request().Context(), filters, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", list)
}

// Get godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, "invalid product id")
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"product": product})
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "product created", echo.Map{"product": product})
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Product changes"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, "invalid product id")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return respondValidation(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err.Error())
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), id, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "product updated", echo.Map{"product": product})
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondValidation(c, "invalid product id")
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "product deleted", nil)
}

// parseIntQuery reads an integer query param, falling back to def when
// missing or unparsable.
func parseIntQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
