package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"SafeKidsMobile/config"
	"SafeKidsMobile/controllers"
	repoimpl "SafeKidsMobile/repositories/impl"
	"SafeKidsMobile/routes"
	"SafeKidsMobile/services"
	"SafeKidsMobile/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	config.InitDatabase()
	firebaseAuth, firebaseMessaging := config.InitFirebase()

	// Репозитории
	userRepo := repoimpl.NewUserRepository(config.DB)
	profileRepo := repoimpl.NewChildProfileRepository(config.DB)

	// WebSocket-хаб событий для клиентов родителей
	hub := websocket.NewHub()
	go hub.Run()

	// Сервисы
	emailService := services.NewEmailService()
	filteringService := services.NewFilteringService()
	notificationService := services.NewNotificationService(firebaseMessaging)
	authService := services.NewAuthService(userRepo, profileRepo, firebaseAuth, emailService)
	childProfileService := services.NewChildProfileService(profileRepo, userRepo, filteringService, notificationService, hub)

	// Контроллеры
	controllers.SetAuthService(authService)
	controllers.SetChildProfileService(childProfileService)
	controllers.SetWebSocketHub(hub)

	router := gin.Default()
	routes.SetupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Сервер запущен на порту %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
