package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = envelopeErrorHandler

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", handler.Health)

	// Session token required; claims end up in the request context.
	authenticated := sessionMiddleware(jwtService)
	// Mutations on the catalog additionally require the admin role.
	admin := requireRole(model.RoleAdmin)

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)
	api.GET("/auth/current-user", authHandler.CurrentUser, authenticated)
	api.POST("/auth/logout", authHandler.Logout, authenticated)

	// Categories
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)
	api.POST("/categories", categoryHandler.Create, authenticated, admin)
	api.PUT("/categories/:id", categoryHandler.Update, authenticated, admin)
	api.DELETE("/categories/:id", categoryHandler.Delete, authenticated, admin)

	// Products
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, authenticated, admin)
	api.PUT("/products/:id", productHandler.Update, authenticated, admin)
	api.DELETE("/products/:id", productHandler.Delete, authenticated, admin)
}

// sessionMiddleware verifies the Bearer token and stores *auth.SessionClaims
// under the "user" context key. Verification failures answer 401 in the
// response envelope.
func sessionMiddleware(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateSessionToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, handler.Envelope{
				Success: false,
				Message: "authentication required",
				Error:   "UNAUTHORIZED",
			})
		},
	})
}

// requireRole gates a route on the role carried in the session claims.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.SessionClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, handler.Envelope{
					Success: false,
					Message: "authentication required",
					Error:   "UNAUTHORIZED",
				})
			}
			if claims.Role != role {
				return c.JSON(http.StatusForbidden, handler.Envelope{
					Success: false,
					Message: "insufficient permissions",
					Error:   "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// envelopeErrorHandler keeps the response envelope on errors raised outside
// handlers (unknown routes, method mismatches, panics caught by Recover).
func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"
	code := "INTERNAL_ERROR"
	if httpErr, ok := err.(*echo.HTTPError); ok {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		switch status {
		case http.StatusNotFound:
			code = "NOT_FOUND"
		case http.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case http.StatusUnauthorized:
			code = "UNAUTHORIZED"
		case http.StatusBadRequest:
			code = "VALIDATION_ERROR"
		}
	}

	_ = c.JSON(status, handler.Envelope{
		Success: false,
		Message: message,
		Error:   code,
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
