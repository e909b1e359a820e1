package routes

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/luxe/internal/config"
	"github.com/example/luxe/internal/handlers"
	"github.com/example/luxe/internal/middleware"
	"github.com/example/luxe/internal/repositories"
	"github.com/example/luxe/internal/services"
	"github.com/example/luxe/internal/utils"
)

// Deps are the shared resources the HTTP layer is built from. Redis may be
// nil unless the redis wishlist backend is selected.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    *slog.Logger
}

// NewApp builds the fiber application with middleware and every route.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Luxe Backend",
		ErrorHandler: handlers.ErrorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(deps.Config.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	Register(app, deps)
	return app
}

// NewAuthService builds the auth service the way the HTTP layer uses it.
func NewAuthService(deps Deps) *services.AuthService {
	tokens := utils.NewTokenService(deps.Config.JWTSecret, deps.Config.TokenExpires)
	return newAuthService(deps, tokens, repositories.NewUserRepository(deps.DB))
}

func newAuthService(deps Deps, tokens *utils.TokenService, users *repositories.UserRepository) *services.AuthService {
	var notifier services.Notifier
	telegram := services.NewTelegramService(deps.Config.TelegramBotToken, deps.Config.TelegramAdminChat, deps.Log)
	if telegram.Enabled() {
		notifier = telegram
	}
	return services.NewAuthService(users, tokens, notifier, deps.Log)
}

func wishlistStore(deps Deps) services.WishlistStore {
	if deps.Config.WishlistBackend == config.WishlistBackendRedis && deps.Redis != nil {
		return repositories.NewRedisWishlistStore(deps.Redis)
	}
	return repositories.NewWishlistRepository(deps.DB)
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) {
	tokens := utils.NewTokenService(deps.Config.JWTSecret, deps.Config.TokenExpires)
	users := repositories.NewUserRepository(deps.DB)
	validate := handlers.NewValidator()

	authService := newAuthService(deps, tokens, users)
	access := services.NewAccessControl(tokens, users)
	cartService := services.NewCartService(repositories.NewCartRepository(deps.DB))
	wishlistService := services.NewWishlistService(wishlistStore(deps))

	authHandler := handlers.NewAuthHandler(authService, validate)
	passwordResetHandler := handlers.NewPasswordResetHandler(authService, validate)
	cartHandler := handlers.NewCartHandler(cartService, validate)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService, validate)
	adminHandler := handlers.NewAdminHandler(users)

	authenticate := middleware.Authenticate(access)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", passwordResetHandler.ForgotPassword)
	auth.Get("/me", authenticate, authHandler.Me)

	// Wishlist routes
	wishlist := api.Group("/wishlist", authenticate)
	wishlist.Get("/", wishlistHandler.Get)
	wishlist.Post("/add", wishlistHandler.Add)
	wishlist.Delete("/remove/:product_id", wishlistHandler.Remove)

	// Cart routes
	cart := api.Group("/cart", authenticate)
	cart.Get("/", cartHandler.Get)
	cart.Post("/add", cartHandler.Add)
	cart.Put("/update", cartHandler.Update)
	cart.Delete("/remove/:product_id", cartHandler.Remove)

	// Admin routes
	admin := api.Group("/admin", authenticate, middleware.RequireAdmin(access))
	admin.Get("/users", adminHandler.ListUsers)
}
