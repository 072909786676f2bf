//go:build wireinject
// +build wireinject

// Wire definition for the API binary. Run `wire gen ./cmd/api` to produce
// wire_gen.go; main.go keeps an equivalent hand-assembled chain so the
// binary builds without the generation step.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appuser "github.com/javanauta/user-directory/internal/application/user"
	"github.com/javanauta/user-directory/internal/domain/user"
	"github.com/javanauta/user-directory/internal/infrastructure/config"
	"github.com/javanauta/user-directory/internal/infrastructure/persistence/mysql"
	"github.com/javanauta/user-directory/internal/infrastructure/persistence/redis"
	"github.com/javanauta/user-directory/internal/interface/http/handler"
	"github.com/javanauta/user-directory/internal/interface/http/middleware"
	"github.com/javanauta/user-directory/pkg/hash"
	"github.com/javanauta/user-directory/pkg/jwt"
	"github.com/javanauta/user-directory/pkg/metrics"
	"github.com/javanauta/user-directory/pkg/response"
)

var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
)

var domainSet = wire.NewSet(
	user.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewCreateUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewGetUserUseCase,
	appuser.NewUpdateUserUseCase,
	appuser.NewDeleteUserUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
)

var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	providePasswordHasher,
	middleware.NewAuthMiddleware,
)

var handlerSet = wire.NewSet(
	handler.NewUserHandler,
)

// provideJWTManager extracts the token parameters from the config; Wire
// cannot pull struct fields out of *config.Config on its own.
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// providePasswordHasher binds the bcrypt implementation to the domain's
// PasswordHasher port.
func providePasswordHasher(cfg *config.Config) user.PasswordHasher {
	return hash.NewBcryptHasher(cfg.Bcrypt.Cost)
}

func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/email", userHandler.GetByEmail)
			users.GET("/:id", userHandler.GetByID)
			users.POST("/login", userHandler.Login)

			users.DELETE("/email", authMiddleware.RequireAdminOrOwnerEmail(), userHandler.Delete)
			users.PUT("/:id", authMiddleware.RequireAdminOrOwnerID(), userHandler.Update)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}
	}

	return r
}

// InitializeApp builds the fully wired Gin engine.
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
