package config

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"SafeKidsMobile/models"
)

var DB *gorm.DB

// InitDatabase подключается к PostgreSQL и мигрирует схему
func InitDatabase() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("[DB] Не удалось подключиться к базе данных: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.ChildProfile{}); err != nil {
		log.Fatalf("[DB] Ошибка миграции схемы: %v", err)
	}

	DB = db
	log.Println("[DB] Подключение к базе данных установлено")
}

// InitFirebase инициализирует Firebase и возвращает клиентов Auth и FCM.
// Без файла учетных данных сервер работает, но без Firebase-функций.
func InitFirebase() (*firebaseauth.Client, *messaging.Client) {
	credentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "firebase-credentials.json"
	}

	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("[Firebase] Файл учетных данных %s не найден, Firebase отключен", credentialsFile)
		return nil, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		log.Printf("[Firebase] Ошибка инициализации приложения: %v", err)
		return nil, nil
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Printf("[Firebase] Ошибка инициализации Auth: %v", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("[Firebase] Ошибка инициализации Messaging: %v", err)
	}

	return authClient, messagingClient
}
