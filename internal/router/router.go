package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/picnichub/memoryhub/backend/internal/handlers"
	"github.com/picnichub/memoryhub/backend/internal/middleware"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/picnichub/memoryhub/backend/pkg/config"
	"github.com/picnichub/memoryhub/backend/pkg/mailer"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Deps bundles everything SetupRoutes wires together.
type Deps struct {
	Config             *config.Config
	Postgres           *gorm.DB
	Mongo              *mongo.Client
	FirebaseAuthClient *auth.Client // nil when Firebase is not configured
	Mailer             mailer.Mailer
	Log                *logrus.Logger
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the story repository so the caller can hand it to the expiry
// sweeper.
func SetupRoutes(e *echo.Echo, deps Deps) (repositories.StoryRepository, error) {
	// AutoMigrate PostgreSQL models
	err := deps.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	mongoDB := deps.Mongo.Database(deps.Config.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	storyRepo := repositories.NewMongoStoryRepository(mongoDB)
	memoryRepo := repositories.NewMongoMemoryRepository(mongoDB)
	reelRepo := repositories.NewMongoReelRepository(mongoDB)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.Postgres)

	// Story eviction is index-driven; make sure the TTL index exists.
	if err := storyRepo.EnsureIndexes(context.Background()); err != nil {
		return nil, err
	}

	resolver := repositories.NewReferenceResolver(memoryRepo, reelRepo, storyRepo, userRepo)
	notifier := notify.NewWriter(notificationRepo, deps.Log)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Protected routes (require a resolved caller identity) ---
	api := e.Group("/api/v1")
	if deps.FirebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuthClient, userRepo))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(deps.Config.JWTSecret))
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Memory routes
	memoryHandler := handlers.NewMemoryHandler(memoryRepo)
	memoryHandler.RegisterMemoryRoutes(api)
	log.Println("Memory routes configured.")

	// Reel routes
	reelHandler := handlers.NewReelHandler(reelRepo)
	reelHandler.RegisterReelRoutes(api)
	log.Println("Reel routes configured.")

	// Story routes
	storyHandler := handlers.NewStoryHandler(storyRepo, userRepo, followRepo, notifier)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier, deps.Mailer)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, memoryRepo, reelRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, memoryRepo, reelRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, resolver)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return storyRepo, nil
}
