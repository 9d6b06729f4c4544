package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"market-service/internal/auth"
	"market-service/internal/db"
	"market-service/internal/handlers"
	"market-service/internal/middleware"
	"market-service/internal/observability"
	"market-service/internal/rabbitmq"
	"market-service/internal/repositories"
	"market-service/internal/telemetry"
	"market-service/internal/ws"
)

const serviceName = "market-service"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	if endpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""); endpoint != "" {
		shutdown, err := telemetry.SetupTracing(context.Background(), serviceName, endpoint)
		if err != nil {
			log.Printf("tracing disabled: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	amqpURL := getEnv("AMQP_URL", "")
	if amqpURL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(amqpURL, getEnv("EVENTS_EXCHANGE", "market_events"))
		if err != nil {
			log.Printf("event publishing disabled: %v", err)
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	auditPublisher := rabbitmq.NewPublisher(amqpURL, getEnv("AUDIT_EXCHANGE", "audit_events"))
	defer auditPublisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(auditPublisher))
	auditEmitter := telemetry.NewAuditEmitter(auditPublisher, "audit.market", serviceName, getEnv("ENVIRONMENT", "dev"))

	tokens := auth.NewManager(getEnv("JWT_SECRET", "dev-secret"), serviceName)

	roomRepo := repositories.NewRoomRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	productRepo := repositories.NewProductRepo(database)
	saleRepo := repositories.NewSaleRepo(database)
	reviewRepo := repositories.NewReviewRepo(database)

	registry := ws.NewRegistry()
	broker := ws.NewBroker(registry)

	chatHandler := handlers.NewChatHandler(roomRepo, messageRepo, broker)
	productHandler := handlers.NewProductHandler(productRepo)
	saleHandler := handlers.NewSaleHandler(saleRepo, auditEmitter)
	reviewHandler := handlers.NewReviewHandler(reviewRepo)

	roomWS := ws.NewRoomWebSocketHandler(registry, roomRepo, tokens)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/chats", authMiddleware, chatHandler.ListRooms)
	router.POST("/chats/start", authMiddleware, chatHandler.StartRoom)
	router.GET("/chats/:room_id/messages", authMiddleware, chatHandler.GetRoomMessages)
	router.POST("/chats/:room_id/messages", authMiddleware, chatHandler.PostRoomMessage)

	router.GET("/products", authMiddleware, productHandler.ListProducts)
	router.POST("/products", authMiddleware, productHandler.CreateProduct)
	router.GET("/products/:product_id", authMiddleware, productHandler.GetProduct)
	router.POST("/products/:product_id/fav", authMiddleware, productHandler.ToggleFavorite)
	router.POST("/products/:product_id/buy", authMiddleware, saleHandler.BuyProduct)

	router.GET("/users/me/favorites", authMiddleware, productHandler.ListFavorites)
	router.GET("/users/me/sales", authMiddleware, saleHandler.ListSales)
	router.GET("/users/me/purchases", authMiddleware, saleHandler.ListPurchases)

	router.POST("/reviews", authMiddleware, reviewHandler.CreateReview)
	router.GET("/users/:user_id/reviews", authMiddleware, reviewHandler.ListSellerReviews)

	router.GET("/ws/chats/:room_id", roomWS.Handle)

	handlers.RegisterDebugRoutes(router, auditEmitter, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8083")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
