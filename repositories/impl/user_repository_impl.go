package impl

import (
	"SafeKidsMobile/models"
	"SafeKidsMobile/repositories"

	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{DB: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (models.User, error) {
	var user models.User
	if err := r.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) Save(user models.User) error {
	return r.DB.Save(&user).Error
}

func (r *UserRepositoryImpl) DeleteByID(id string) error {
	return r.DB.Where("id = ?", id).Delete(&models.User{}).Error
}
