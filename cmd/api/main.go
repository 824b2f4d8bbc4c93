package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/shopping-list-backend/internal/auth"
	"github.com/wichananm65/shopping-list-backend/internal/config"
	"github.com/wichananm65/shopping-list-backend/internal/shoppinglist"
	"github.com/wichananm65/shopping-list-backend/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// main wires the mock variant: same routes as cmd/app, backed entirely by
// seeded in-memory repositories. Useful for the frontend and for demos.
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "local-dev-secret"
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	users, lists := seedData()

	userService := user.NewService(user.NewInMemoryRepository(users))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	listService := shoppinglist.NewService(shoppinglist.NewInMemoryRepository(lists))
	listHandler := shoppinglist.NewHandler(listService)

	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	listHandler.RegisterProtectedRoutes(app)

	log.Printf("starting mock server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// seedData builds two demo accounts (password "password") and one list so
// the API is usable straight after start.
func seedData() ([]user.User, []shoppinglist.ShoppingList) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	authorityID := uuid.NewString()
	ownerID := uuid.NewString()

	users := []user.User{
		{
			UuIdentity:  authorityID,
			Email:       "authority@example.com",
			Password:    string(hash),
			Name:        "Demo Authority",
			ProfileList: []string{auth.ProfileAuthorities, auth.ProfileStandardUsers},
		},
		{
			UuIdentity:  ownerID,
			Email:       "user@example.com",
			Password:    string(hash),
			Name:        "Demo User",
			ProfileList: []string{auth.ProfileStandardUsers},
		},
	}

	lists := []shoppinglist.ShoppingList{
		{
			ID:         uuid.NewString(),
			Name:       "Saturday Groceries",
			State:      shoppinglist.StateActive,
			UuIdentity: ownerID,
			MemberList: []shoppinglist.Member{{UuIdentity: ownerID, Role: shoppinglist.RoleOwner}},
			ItemList: []shoppinglist.Item{
				{ID: uuid.NewString(), Name: "Milk", Quantity: 2, Unit: "l"},
				{ID: uuid.NewString(), Name: "Bread", Quantity: 1},
			},
		},
	}

	return users, lists
}
