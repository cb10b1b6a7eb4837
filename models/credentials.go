package models

// LoginCredentials — данные для входа родителя
type LoginCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterCredentials — данные для регистрации нового аккаунта
type RegisterCredentials struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
}

// ChildProfileDraft — данные для создания профиля ребенка.
// ID и parent_id назначает сервер.
type ChildProfileDraft struct {
	Name         string   `json:"name" binding:"required"`
	DateOfBirth  string   `json:"date_of_birth" binding:"required"` // ISO-8601
	ProfileImage string   `json:"profile_image"`
	PIN          string   `json:"pin"`
	DeviceToken  string   `json:"device_token"`
	AgeGroup     AgeGroup `json:"age_group" binding:"required"`
}
