package repositories

import "SafeKidsMobile/models"

type UserRepository interface {
	FindByID(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	Save(user models.User) error
	DeleteByID(id string) error
}
