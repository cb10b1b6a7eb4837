package store

import (
	"context"

	"SafeKidsMobile/models"
)

// UserData — агрегированный ответ бэкенда: пользователь и его дети
type UserData struct {
	User          models.User           `json:"user"`
	ChildProfiles []models.ChildProfile `json:"child_profiles"`
}

// AuthGateway — удаленный шлюз аутентификации и доменных операций.
// Реализуется HTTP-клиентом в пакете gateway.
type AuthGateway interface {
	Login(ctx context.Context, credentials models.LoginCredentials) (UserData, error)
	Register(ctx context.Context, credentials models.RegisterCredentials) (models.User, error)
	Logout(ctx context.Context) error
	GetUserData(ctx context.Context, userID string) (UserData, error)
	CreateChildProfile(ctx context.Context, draft models.ChildProfileDraft) (models.ChildProfile, error)
	UpdateChildProfile(ctx context.Context, id string, updates models.ProfileUpdate) (models.ChildProfile, error)
	DeleteChildProfile(ctx context.Context, id string) error
}

// CredentialCache — защищенное хранилище пары учетных данных
// для повторного входа по биометрии. Реализуется пакетом keychain.
type CredentialCache interface {
	Store(email, password string) error
	// Retrieve возвращает сохраненные учетные данные.
	// Если ничего не сохранено, возвращается ошибка keychain.ErrNoCredentials.
	Retrieve() (models.LoginCredentials, error)
	Clear() error
}

// Authenticator — платформенная биометрическая проверка.
// Реализуется пакетом biometric.
type Authenticator interface {
	IsAvailable() bool
	Authenticate(ctx context.Context) error
}

// Backing — долговременное key-value хранилище для сериализованного
// состояния сессии. Реализуется пакетом kvstore.
type Backing interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
