package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/db"
	"microblog/internal/handler"
	"microblog/internal/observability"
	"microblog/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	config := config.Load()
	if config.Session.Secret == "" {
		logrus.Fatal("SESSION_SECRET must be set")
	}

	database := db.Init(&config.DB)
	defer func() {
		if err := database.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close database connection")
		}
	}()

	if err := db.EnsureSchema(database); err != nil {
		logrus.WithError(err).Fatal("Failed to ensure database schema")
	}

	rdb := cache.SetupRedis(&config.Redis)
	defer func() {
		if err := rdb.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close redis connection")
		}
	}()

	conn := queue.SetupRabbitMQ(&config.RabbitMQ)
	defer func() {
		if err := conn.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to close RabbitMQ connection")
		}
	}()

	// Initialize Prometheus metrics
	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	r := handler.SetupHandler(database, conn, rdb, config)

	// Expose /metrics endpoint for Prometheus to scrape
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})
	logrus.Info("Metrics endpoint exposed at /metrics")

	port := config.AppPort
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logrus.Info("Starting server on :" + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
}
