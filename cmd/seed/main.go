package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// seedCategory bundles a category with its products for seeding.
type seedCategory struct {
	category model.Category
	products []model.Product
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedCatalog(ctx, categoryRepo, productRepo, sampleCatalog())
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Categories created: %d", created)
	log.Printf("  - Categories already present: %d", skipped)
}

// seedAdmin creates the admin user from ADMIN_EMAIL/ADMIN_PASSWORD if it
// does not exist yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@storefront.local")
	password := getEnv("ADMIN_PASSWORD", "ChangeMe123!")

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		log.Printf("Admin user %s already exists", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Store Admin",
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("Admin user %s created", email)
	return nil
}

// seedCatalog inserts the sample catalog, skipping categories whose slug
// already exists so reruns are safe.
func seedCatalog(ctx context.Context, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, catalog []seedCategory) (created, skipped int, err error) {
	for _, entry := range catalog {
		existing, err := categoryRepo.FindBySlug(ctx, entry.category.Slug)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("check category %s: %w", entry.category.Slug, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		category := entry.category
		if err := categoryRepo.Create(ctx, &category); err != nil {
			return created, skipped, fmt.Errorf("create category %s: %w", category.Slug, err)
		}

		for _, product := range entry.products {
			product.CategoryID = category.ID
			if err := productRepo.Create(ctx, &product); err != nil {
				return created, skipped, fmt.Errorf("create product %s: %w", product.Name, err)
			}
		}
		created++
	}
	return created, skipped, nil
}

func sampleCatalog() []seedCategory {
	return []seedCategory{
		{
			category: model.Category{Name: "Electronics", Slug: "electronics", Description: "Phones, laptops and accessories"},
			products: []model.Product{
				{Name: "Wireless Mouse", Price: decimal.NewFromFloat(24.99), Stock: 120},
				{Name: "Mechanical Keyboard", Price: decimal.NewFromFloat(89.90), Stock: 45},
				{Name: "USB-C Hub", Price: decimal.NewFromFloat(39.50), Stock: 80},
			},
		},
		{
			category: model.Category{Name: "Books", Slug: "books", Description: "Paper still works"},
			products: []model.Product{
				{Name: "The Go Programming Language", Price: decimal.NewFromFloat(42.00), Stock: 30},
				{Name: "Designing Data-Intensive Applications", Price: decimal.NewFromFloat(49.99), Stock: 25},
			},
		},
		{
			category: model.Category{Name: "Home", Slug: "home", Description: "Kitchen and living"},
			products: []model.Product{
				{Name: "French Press", Price: decimal.NewFromFloat(29.00), Stock: 60},
				{Name: "Cast Iron Pan", Price: decimal.NewFromFloat(54.00), Stock: 15},
			},
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
