package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ApollonSMK/MEXperience-sub000/internal/config"
	dbpkg "github.com/ApollonSMK/MEXperience-sub000/internal/db"
	"github.com/ApollonSMK/MEXperience-sub000/internal/middleware"
	"github.com/ApollonSMK/MEXperience-sub000/internal/routes"
	"github.com/ApollonSMK/MEXperience-sub000/internal/stream"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	// Flux temps réel : les mutations locales partent sur le canal
	// redis, et la vue fusionnée se reconstruit en écoutant ce même
	// canal (y compris ce que d'autres instances publient).
	publisher := stream.NewPublisher(rdb, cfg.EventChannel)
	feed := stream.NewFeed()

	subscriber := stream.NewSubscriber(rdb, cfg.EventChannel)
	go subscriber.Run(context.Background(), feed.Apply)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, publisher, feed)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
