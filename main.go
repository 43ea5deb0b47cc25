package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trofybr/trofy-pedidos-api/config"
	"github.com/trofybr/trofy-pedidos-api/controllers"
	"github.com/trofybr/trofy-pedidos-api/metrics"
	"github.com/trofybr/trofy-pedidos-api/middleware"
	"github.com/trofybr/trofy-pedidos-api/models"
	"github.com/trofybr/trofy-pedidos-api/services"
	"github.com/trofybr/trofy-pedidos-api/stores"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting Trofy orders API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Pedido{}, &models.HistoricoStatus{}, &models.Link{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	metrics.Register()

	mirror, err := services.NewSheetsMirror(context.Background(), cfg.GoogleCredentialsFile, cfg.GoogleSheetsID)
	if err != nil {
		log.Fatalf("Failed to configure Google Sheets mirror: %v", err)
	}
	notifier := services.NewIANotifier(cfg.IABaseURL)

	router := setupRouter(cfg, db, mirror, notifier)

	addr := ":" + cfg.Port
	log.Printf("API rodando em http://0.0.0.0%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires stores, services and controllers into the gin engine
func setupRouter(cfg *config.Config, db *gorm.DB, mirror services.MirrorService, notifier services.NotifierService) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	pedidoStore := stores.NewPedidoStore(db)
	linkStore := stores.NewLinkStore(db)

	pedidoController := controllers.NewPedidoController(pedidoStore, mirror, notifier)
	linkController := controllers.NewLinkController(linkStore)

	router.POST("/pedidos", pedidoController.CreatePedido)
	router.PUT("/pedidos/:id", pedidoController.UpdateStatus)
	router.GET("/pedidos", pedidoController.ListPedidos)
	router.GET("/pedidos/:id/historico", pedidoController.History)
	router.GET("/health", pedidoController.Health)
	router.GET("/teste", pedidoController.Teste)
	router.GET("/ia/health", pedidoController.IAHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	links := router.Group("/api/links")
	{
		links.GET("", linkController.List)
		links.GET("/:id", linkController.Get)

		protected := links.Group("", middleware.LinksAuth(cfg.LinksJWTSecret))
		{
			protected.POST("", linkController.Create)
			protected.PUT("/:id", linkController.Update)
			protected.DELETE("/:id", linkController.Delete)
		}
	}

	return router
}
