package handler

import (
	"database/sql"
	"microblog/internal/config"
	"microblog/internal/events"
	"microblog/internal/middleware"
	"microblog/internal/observability"
	"microblog/internal/post"
	"microblog/internal/templates"
	"microblog/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rabbitmq/amqp091-go"
)

// SetupHandler initializes all dependencies and routes
func SetupHandler(db *sql.DB, conn *amqp091.Connection, redisClient *redis.Client, cfg *config.Config) *gin.Engine {

	r := gin.Default()
	r.SetHTMLTemplate(templates.Load())

	// Installed before any route so every page is tracked.
	if observability.GlobalMetrics != nil {
		r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))
	}

	var publisher events.PublisherInterface
	if conn != nil {
		publisher = events.NewPublisher(conn)
	}

	// Initialize repositories
	userRepo := user.NewUserRepository()
	postRepo := post.NewPostRepository()

	// Initialize services
	userService := user.NewUserService(userRepo, db, publisher)
	postService := post.NewPostService(postRepo, db, publisher)

	// Initialize controllers
	userController := user.NewUserController(userService, cfg.Session.Secret)
	postController := post.NewPostController(postService)

	setupRoutes(r, userController, postController, userService, redisClient, cfg.Session.Secret)

	return r
}

// setupRoutes configures all application routes
func setupRoutes(r *gin.Engine, userCtrl *user.UserController, postCtrl *post.PostController, userService user.UserServiceInterface, redisClient *redis.Client, secret string) {

	// Every page resolves the session cookie first.
	r.Use(middleware.CurrentUser(secret, userService))

	r.GET("/", postCtrl.Index)

	// Anonymous-only pages, rate limited per client IP. The CSRF check
	// runs after the redirects so an anonymous POST to a protected
	// path still lands on /login instead of a 403.
	anon := r.Group("/")
	anon.Use(middleware.AnonymousOnly())
	if redisClient != nil {
		anon.Use(middleware.RateLimiterMiddleware(redisClient, middleware.StrictRateLimiter()))
	}
	anon.Use(middleware.CSRF(secret))
	{
		anon.GET("/register", userCtrl.ShowRegister)
		anon.POST("/register", userCtrl.Register)
		anon.GET("/login", userCtrl.ShowLogin)
		anon.POST("/login", userCtrl.Login)
	}

	// Protected pages
	authed := r.Group("/")
	authed.Use(middleware.RequireAuthenticated())
	authed.Use(middleware.CSRF(secret))
	{
		authed.GET("/logout", userCtrl.Logout)
		authed.GET("/blog/create", postCtrl.ShowCreate)
		authed.POST("/blog/create", postCtrl.Create)
	}
}
