package repositories

import "SafeKidsMobile/models"

type ChildProfileRepository interface {
	FindByID(id string) (models.ChildProfile, error)
	// FindByParentID возвращает профили в порядке создания
	FindByParentID(parentID string) ([]models.ChildProfile, error)
	Save(profile models.ChildProfile) error
	Delete(profile models.ChildProfile) error
}
