package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/javanauta/user-directory/docs"
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

// @title           User Directory API
// @version         1.0
// @description     User account management service: registration, lookup,
// @description     partial update and deletion of users, with JWT login.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	metrics.InitMetrics()

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("connect mysql: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	// Dependency chain, assembled bottom-up:
	// Repository <- Service <- UseCase <- Handler.
	// wire.go describes the same graph for generated injection.
	userRepo := mysql.NewUserRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	passwordHasher := hash.NewBcryptHasher(cfg.Bcrypt.Cost)

	userService := user.NewService(userRepo, passwordHasher)

	createUseCase := appuser.NewCreateUserUseCase(userService)
	listUseCase := appuser.NewListUsersUseCase(userService)
	getUseCase := appuser.NewGetUserUseCase(userService)
	updateUseCase := appuser.NewUpdateUserUseCase(userService)
	deleteUseCase := appuser.NewDeleteUserUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)

	userHandler := handler.NewUserHandler(
		createUseCase,
		listUseCase,
		getUseCase,
		updateUseCase,
		deleteUseCase,
		loginUseCase,
		logoutUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	registerRoutes(r, userHandler, authMiddleware)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s (mode=%s)", addr, cfg.Server.Mode)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func registerRoutes(r *gin.Engine, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
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
			// Public surface.
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/email", userHandler.GetByEmail)
			users.GET("/:id", userHandler.GetByID)
			users.POST("/login", userHandler.Login)

			// Guarded surface. Authorization is decided per route: delete is
			// addressed by email, update by id.
			users.DELETE("/email", authMiddleware.RequireAdminOrOwnerEmail(), userHandler.Delete)
			users.PUT("/:id", authMiddleware.RequireAdminOrOwnerID(), userHandler.Update)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}
	}
}
