package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SafeKidsMobile/models"
)

// ChildProfileManager — операции над профилями детей, нужные контроллеру
type ChildProfileManager interface {
	CreateProfile(parentID string, draft models.ChildProfileDraft) (models.ChildProfile, error)
	UpdateProfile(parentID, profileID string, updates models.ProfileUpdate) (models.ChildProfile, error)
	DeleteProfile(parentID, profileID string) error
	ListProfiles(parentID string) ([]models.ChildProfile, error)
	VerifyPIN(profileID, pin string) (bool, error)
}

var childProfileService ChildProfileManager

func SetChildProfileService(s ChildProfileManager) {
	childProfileService = s
}

// CreateChildProfile создает профиль ребенка для авторизованного родителя
func CreateChildProfile(c *gin.Context) {
	var draft models.ChildProfileDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parentID := c.GetString("user_id")
	profile, err := childProfileService.CreateProfile(parentID, draft)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": true,
		"data":    profile,
	})
}

// ListChildProfiles возвращает всех детей авторизованного родителя
func ListChildProfiles(c *gin.Context) {
	parentID := c.GetString("user_id")
	profiles, err := childProfileService.ListProfiles(parentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if profiles == nil {
		profiles = []models.ChildProfile{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": true,
		"data":    profiles,
	})
}

// UpdateChildProfile применяет частичное обновление к профилю ребенка
func UpdateChildProfile(c *gin.Context) {
	var updates models.ProfileUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parentID := c.GetString("user_id")
	profile, err := childProfileService.UpdateProfile(parentID, c.Param("id"), updates)
	if err != nil {
		status := http.StatusBadRequest
		if err.Error() == "child profile not found" {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": true,
		"data":    profile,
	})
}

// DeleteChildProfile удаляет профиль ребенка
func DeleteChildProfile(c *gin.Context) {
	parentID := c.GetString("user_id")
	if err := childProfileService.DeleteProfile(parentID, c.Param("id")); err != nil {
		status := http.StatusBadRequest
		if err.Error() == "child profile not found" {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true})
}

// VerifyChildPIN проверяет PIN-код профиля ребенка
func VerifyChildPIN(c *gin.Context) {
	var request struct {
		PIN string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := childProfileService.VerifyPIN(c.Param("id"), request.PIN)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": true,
		"valid":   valid,
	})
}
