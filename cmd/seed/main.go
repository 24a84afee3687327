package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"recipebox/internal/auth"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/service"
)

// Seeds a local database with an admin account, a demo user and a few
// recipes. Existing rows are reused, so running it twice is safe.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)

	admin := seedUser(ctx, userRepo, authService, "admin@example.com", "changeme123", "Admin")
	if admin != nil && !admin.IsSuperuser {
		admin.IsStaff = true
		admin.IsSuperuser = true
		if err := userRepo.Update(ctx, admin); err != nil {
			log.Fatalf("Failed to promote admin: %v", err)
		}
		log.Println("Admin account promoted to staff/superuser")
	}

	demo := seedUser(ctx, userRepo, authService, "demo@example.com", "demopass123", "Demo User")
	if demo == nil {
		log.Fatal("Failed to seed demo user")
	}

	resolver := service.NewAttributeResolver()
	recipeService := service.NewRecipeService(recipeRepo, resolver, noopMedia{})

	existing, err := recipeRepo.ListByOwner(ctx, demo.ID)
	if err != nil {
		log.Fatalf("Failed to list demo recipes: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d recipes, skipping recipe seed", len(existing))
		return
	}

	samples := []service.CreateRecipeInput{
		{
			Title:       "Thai Green Curry",
			TimeMinutes: 35,
			Price:       decimal.NewFromFloat(7.50),
			Description: "Fragrant coconut curry with green chilli paste.",
			Tags:        []service.AttributeInput{{Name: "Thai"}, {Name: "Dinner"}},
			Ingredients: []service.AttributeInput{{Name: "Coconut Milk"}, {Name: "Green Chilli"}},
		},
		{
			Title:       "Avocado Toast",
			TimeMinutes: 10,
			Price:       decimal.NewFromFloat(3.25),
			Description: "Sourdough, smashed avocado, lemon, chilli flakes.",
			Tags:        []service.AttributeInput{{Name: "Breakfast"}},
			Ingredients: []service.AttributeInput{{Name: "Avocado"}, {Name: "Sourdough"}},
		},
		{
			Title:       "Chocolate Brownies",
			TimeMinutes: 50,
			Price:       decimal.NewFromFloat(5.00),
			Description: "Dense and fudgy, with dark chocolate chunks.",
			Tags:        []service.AttributeInput{{Name: "Dessert"}},
			Ingredients: []service.AttributeInput{{Name: "Dark Chocolate"}, {Name: "Butter"}},
		},
	}

	for _, input := range samples {
		recipe, err := recipeService.Create(ctx, demo.ID, input)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", input.Title, err)
		}
		log.Printf("Seeded recipe %q (id=%d)", recipe.Title, recipe.ID)
	}

	log.Println("Seed completed")
}

func seedUser(ctx context.Context, repo repository.UserRepository, authService service.AuthService, email, password, name string) *model.User {
	if user, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("User %s already exists, skipping", email)
		return user
	}
	user, err := authService.Register(ctx, email, password, name)
	if err != nil {
		log.Fatalf("Failed to seed user %s: %v", email, err)
	}
	log.Printf("Seeded user %s (id=%d)", email, user.ID)
	return user
}

// noopMedia satisfies storage.MediaStore; the seed data has no images.
type noopMedia struct{}

func (noopMedia) Save([]byte) (string, error) { return "", nil }
func (noopMedia) Remove(string) error         { return nil }
func (noopMedia) Path(name string) string     { return name }
