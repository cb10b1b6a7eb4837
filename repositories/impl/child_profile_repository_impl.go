package impl

import (
	"SafeKidsMobile/models"
	"SafeKidsMobile/repositories"

	"gorm.io/gorm"
)

type ChildProfileRepositoryImpl struct {
	DB *gorm.DB
}

func NewChildProfileRepository(db *gorm.DB) repositories.ChildProfileRepository {
	return &ChildProfileRepositoryImpl{DB: db}
}

func (r *ChildProfileRepositoryImpl) FindByID(id string) (models.ChildProfile, error) {
	var profile models.ChildProfile
	if err := r.DB.Where("id = ?", id).First(&profile).Error; err != nil {
		return models.ChildProfile{}, err
	}
	return profile, nil
}

func (r *ChildProfileRepositoryImpl) FindByParentID(parentID string) ([]models.ChildProfile, error) {
	var profiles []models.ChildProfile
	// Порядок создания — это порядок, в котором клиент показывает детей
	if err := r.DB.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ChildProfileRepositoryImpl) Save(profile models.ChildProfile) error {
	return r.DB.Save(&profile).Error
}

func (r *ChildProfileRepositoryImpl) Delete(profile models.ChildProfile) error {
	return r.DB.Delete(&profile).Error
}
