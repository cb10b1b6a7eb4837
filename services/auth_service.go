package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"SafeKidsMobile/models"
	"SafeKidsMobile/repositories"
)

var jwtKey = []byte("your_secret_key")

// Claims — полезная нагрузка JWT-токена сессии
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo     repositories.UserRepository
	ProfileRepo  repositories.ChildProfileRepository
	FirebaseAuth *firebaseauth.Client
	EmailSrv     *EmailService
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ChildProfileRepository, firebaseAuth *firebaseauth.Client, emailSrv *EmailService) *AuthService {
	return &AuthService{UserRepo: userRepo, ProfileRepo: profileRepo, FirebaseAuth: firebaseAuth, EmailSrv: emailSrv}
}

// RegisterParent создает аккаунт родителя: пользователя в Firebase,
// запись в локальной базе и JWT-токен сессии
func (s *AuthService) RegisterParent(credentials models.RegisterCredentials) (models.User, string, error) {
	if credentials.Password == "" {
		return models.User{}, "", errors.New("password cannot be empty")
	}

	// Email должен быть свободен
	if _, err := s.UserRepo.FindByEmail(credentials.Email); err == nil {
		return models.User{}, "", errors.New("account with this email already exists")
	}

	// Регистрируем пользователя в Firebase
	var firebaseUID string
	if s.FirebaseAuth != nil {
		params := (&firebaseauth.UserToCreate{}).
			Email(credentials.Email).
			Password(credentials.Password).
			DisplayName(credentials.Name)

		createdUser, err := s.FirebaseAuth.CreateUser(context.Background(), params)
		if err != nil {
			return models.User{}, "", err
		}
		firebaseUID = createdUser.UID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	now := time.Now()
	user := models.User{
		ID:               uuid.NewString(),
		Email:            credentials.Email,
		Name:             credentials.Name,
		PhoneNumber:      credentials.PhoneNumber,
		PasswordHash:     string(hashedPassword),
		FirebaseUID:      firebaseUID,
		Subscription:     models.SubscriptionFree,
		BiometricEnabled: false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.UserRepo.Save(user); err != nil {
		return models.User{}, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// LoginParent проверяет пароль и возвращает пользователя, его детей и токен
func (s *AuthService) LoginParent(email, password string) (models.User, []models.ChildProfile, string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return models.User{}, nil, "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, nil, "", errors.New("invalid credentials")
	}

	profiles, err := s.ProfileRepo.FindByParentID(user.ID)
	if err != nil {
		return models.User{}, nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, nil, "", err
	}

	return user, profiles, token, nil
}

// GetUserData возвращает актуального пользователя и список его детей
func (s *AuthService) GetUserData(userID string) (models.User, []models.ChildProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return models.User{}, nil, errors.New("user not found")
	}

	profiles, err := s.ProfileRepo.FindByParentID(userID)
	if err != nil {
		return models.User{}, nil, err
	}

	return user, profiles, nil
}

// RequestPasswordReset генерирует 6-значный код и отправляет его на email.
// Для несуществующего email возвращается успех, чтобы не раскрывать
// наличие аккаунта.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		log.Printf("[Auth] Запрос сброса пароля для неизвестного email")
		return nil
	}

	code := GenerateVerificationCode()
	expiresAt := time.Now().Add(24 * time.Hour)
	user.ResetCode = code
	user.ResetCodeExpires = &expiresAt

	if err := s.UserRepo.Save(user); err != nil {
		return err
	}

	if s.EmailSrv != nil {
		if err := s.EmailSrv.SendPasswordResetEmail(user.Email, code); err != nil {
			log.Printf("[Auth] Ошибка отправки письма с кодом: %v", err)
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ResetPassword меняет пароль по коду из письма
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return errors.New("invalid reset code")
	}

	if !user.IsResetCodeValid(code) {
		return errors.New("invalid reset code")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetCode = ""
	user.ResetCodeExpires = nil
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Save(user); err != nil {
		return err
	}

	// Синхронизируем пароль в Firebase, если аккаунт там заведен
	if s.FirebaseAuth != nil && user.FirebaseUID != "" {
		params := (&firebaseauth.UserToUpdate{}).Password(newPassword)
		if _, err := s.FirebaseAuth.UpdateUser(context.Background(), user.FirebaseUID, params); err != nil {
			log.Printf("[Auth] Не удалось обновить пароль в Firebase: %v", err)
		}
	}

	return nil
}

// issueToken выпускает JWT сроком на 24 часа
func (s *AuthService) issueToken(user models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}
