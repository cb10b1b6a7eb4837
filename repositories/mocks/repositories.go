// Package mocks содержит mock-реализации репозиториев для тестов сервисов
package mocks

import (
	"github.com/stretchr/testify/mock"

	"SafeKidsMobile/models"
)

// UserRepository — mock для repositories.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(id string) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) Save(user models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserRepository) DeleteByID(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// ChildProfileRepository — mock для repositories.ChildProfileRepository
type ChildProfileRepository struct {
	mock.Mock
}

func (m *ChildProfileRepository) FindByID(id string) (models.ChildProfile, error) {
	args := m.Called(id)
	return args.Get(0).(models.ChildProfile), args.Error(1)
}

func (m *ChildProfileRepository) FindByParentID(parentID string) ([]models.ChildProfile, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChildProfile), args.Error(1)
}

func (m *ChildProfileRepository) Save(profile models.ChildProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *ChildProfileRepository) Delete(profile models.ChildProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}
