package models

import "time"

// SubscriptionTier определяет тариф подписки родителя
type SubscriptionTier string

const (
	SubscriptionFree    SubscriptionTier = "free"
	SubscriptionPremium SubscriptionTier = "premium"
)

// User представляет аккаунт родителя
type User struct {
	ID               string           `json:"id" gorm:"primaryKey"`
	Email            string           `json:"email" gorm:"uniqueIndex"`
	Name             string           `json:"name"`
	PhoneNumber      string           `json:"phone_number,omitempty"`
	ProfileImage     string           `json:"profile_image,omitempty"`
	PasswordHash     string           `json:"-"`
	FirebaseUID      string           `json:"firebase_uid,omitempty"`
	DeviceToken      string           `json:"device_token,omitempty"`
	Subscription     SubscriptionTier `json:"subscription"`
	BiometricEnabled bool             `json:"biometric_enabled"`
	ResetCode        string           `json:"-" gorm:"size:6"`
	ResetCodeExpires *time.Time       `json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// IsResetCodeValid проверяет код восстановления пароля и срок его действия
func (u *User) IsResetCodeValid(code string) bool {
	return u.ResetCode != "" && u.ResetCode == code &&
		u.ResetCodeExpires != nil && time.Now().Before(*u.ResetCodeExpires)
}
