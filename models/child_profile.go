package models

import "time"

// AgeGroup определяет возрастную группу ребенка.
// От нее зависят настройки по умолчанию и пресет DNS-фильтрации.
type AgeGroup string

const (
	AgeGroupPreschool AgeGroup = "preschool" // 3-5 лет
	AgeGroupChild     AgeGroup = "child"     // 6-12 лет
	AgeGroupTeen      AgeGroup = "teen"      // 13-17 лет
	AgeGroupCustom    AgeGroup = "custom"
)

// ChildProfile представляет профиль ребенка, привязанный к аккаунту родителя
type ChildProfile struct {
	ID             string        `json:"id" gorm:"primaryKey"`
	ParentID       string        `json:"parent_id" gorm:"index"`
	Name           string        `json:"name"`
	DateOfBirth    time.Time     `json:"date_of_birth"`
	ProfileImage   string        `json:"profile_image,omitempty"`
	PIN            string        `json:"pin,omitempty"`
	DeviceToken    string        `json:"device_token,omitempty"`
	AgeGroup       AgeGroup      `json:"age_group"`
	FilterConfigID string        `json:"filter_config_id,omitempty"`
	Settings       ChildSettings `json:"settings" gorm:"serializer:json"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ProfileUpdate описывает частичное обновление профиля ребенка.
// Nil-поля не трогаются, заполненные перезаписывают текущее значение.
type ProfileUpdate struct {
	Name         *string         `json:"name,omitempty"`
	DateOfBirth  *time.Time      `json:"date_of_birth,omitempty"`
	ProfileImage *string         `json:"profile_image,omitempty"`
	PIN          *string         `json:"pin,omitempty"`
	DeviceToken  *string         `json:"device_token,omitempty"`
	AgeGroup     *AgeGroup       `json:"age_group,omitempty"`
	Settings     *SettingsUpdate `json:"settings,omitempty"`
}

// Apply накладывает непустые поля обновления на профиль.
// Поля, не указанные в обновлении, остаются без изменений.
func (u ProfileUpdate) Apply(p *ChildProfile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = *u.DateOfBirth
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
	if u.PIN != nil {
		p.PIN = *u.PIN
	}
	if u.DeviceToken != nil {
		p.DeviceToken = *u.DeviceToken
	}
	if u.AgeGroup != nil {
		p.AgeGroup = *u.AgeGroup
	}
	if u.Settings != nil {
		u.Settings.Apply(&p.Settings)
	}
}

// IsEmpty сообщает, что обновление не содержит ни одного поля
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.DateOfBirth == nil && u.ProfileImage == nil &&
		u.PIN == nil && u.DeviceToken == nil && u.AgeGroup == nil && u.Settings == nil
}
