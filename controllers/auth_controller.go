package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SafeKidsMobile/models"
	"SafeKidsMobile/services"
)

var authService *services.AuthService

func SetAuthService(s *services.AuthService) {
	authService = s
}

// RegisterParent обрабатывает регистрацию аккаунта родителя
func RegisterParent(c *gin.Context) {
	var credentials models.RegisterCredentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := authService.RegisterParent(credentials)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        true,
		"token":          token,
		"user":           user,
		"child_profiles": []models.ChildProfile{},
	})
}

// LoginParent обрабатывает вход родителя по email и паролю
func LoginParent(c *gin.Context) {
	var credentials models.LoginCredentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, profiles, token, err := authService.LoginParent(credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if profiles == nil {
		profiles = []models.ChildProfile{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        true,
		"token":          token,
		"user":           user,
		"child_profiles": profiles,
	})
}

// Logout завершает сессию. Токены не хранятся на сервере,
// поэтому достаточно подтвердить клиенту успех.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": true})
}

// GetUserData возвращает пользователя и его детей по id.
// Родитель может запрашивать только свои данные.
func GetUserData(c *gin.Context) {
	userID := c.Param("user_id")
	if userID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	user, profiles, err := authService.GetUserData(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if profiles == nil {
		profiles = []models.ChildProfile{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        true,
		"user":           user,
		"child_profiles": profiles,
	})
}

// RequestPasswordReset отправляет код восстановления на email
func RequestPasswordReset(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := authService.RequestPasswordReset(request.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true})
}

// ResetPassword меняет пароль по коду из письма
func ResetPassword(c *gin.Context) {
	var request struct {
		Email       string `json:"email" binding:"required,email"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := authService.ResetPassword(request.Email, request.Code, request.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true})
}
