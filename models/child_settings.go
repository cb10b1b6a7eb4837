package models

// ContentFilterLevel определяет строгость контент-фильтрации
type ContentFilterLevel string

const (
	FilterStrict   ContentFilterLevel = "strict"
	FilterModerate ContentFilterLevel = "moderate"
	FilterRelaxed  ContentFilterLevel = "relaxed"
	FilterCustom   ContentFilterLevel = "custom"
)

// ChildSettings хранит настройки ограничений для профиля ребенка.
// Всегда присутствуют в профиле, значения по умолчанию выставляются при создании.
type ChildSettings struct {
	ScreenTimeLimit         int                `json:"screen_time_limit"` // минут в день
	AllowedApps             []string           `json:"allowed_apps"`
	BlockedApps             []string           `json:"blocked_apps"`
	AllowedWebsites         []string           `json:"allowed_websites"`
	BlockedWebsites         []string           `json:"blocked_websites"`
	Bedtime                 string             `json:"bedtime"`   // формат "HH:MM"
	WakeTime                string             `json:"wake_time"` // формат "HH:MM"
	ContentFilterLevel      ContentFilterLevel `json:"content_filter_level"`
	HomeworkMode            bool               `json:"homework_mode"`
	LocationTrackingEnabled bool               `json:"location_tracking_enabled"`
	TaskRewardsEnabled      bool               `json:"task_rewards_enabled"`
}

// DefaultChildSettings возвращает настройки по умолчанию для возрастной группы
func DefaultChildSettings(ageGroup AgeGroup) ChildSettings {
	settings := ChildSettings{
		ScreenTimeLimit:         480, // 8 часов
		AllowedApps:             []string{},
		BlockedApps:             []string{},
		AllowedWebsites:         []string{},
		BlockedWebsites:         []string{},
		Bedtime:                 "21:00",
		WakeTime:                "07:00",
		ContentFilterLevel:      FilterModerate,
		HomeworkMode:            false,
		LocationTrackingEnabled: true,
		TaskRewardsEnabled:      true,
	}

	switch ageGroup {
	case AgeGroupPreschool:
		settings.ScreenTimeLimit = 120
		settings.Bedtime = "20:00"
		settings.ContentFilterLevel = FilterStrict
	case AgeGroupChild:
		settings.ScreenTimeLimit = 240
		settings.ContentFilterLevel = FilterStrict
	case AgeGroupTeen:
		settings.Bedtime = "22:00"
		settings.ContentFilterLevel = FilterModerate
	}

	return settings
}

// SettingsUpdate описывает частичное обновление настроек ребенка
type SettingsUpdate struct {
	ScreenTimeLimit         *int                `json:"screen_time_limit,omitempty"`
	AllowedApps             []string            `json:"allowed_apps,omitempty"`
	BlockedApps             []string            `json:"blocked_apps,omitempty"`
	AllowedWebsites         []string            `json:"allowed_websites,omitempty"`
	BlockedWebsites         []string            `json:"blocked_websites,omitempty"`
	Bedtime                 *string             `json:"bedtime,omitempty"`
	WakeTime                *string             `json:"wake_time,omitempty"`
	ContentFilterLevel      *ContentFilterLevel `json:"content_filter_level,omitempty"`
	HomeworkMode            *bool               `json:"homework_mode,omitempty"`
	LocationTrackingEnabled *bool               `json:"location_tracking_enabled,omitempty"`
	TaskRewardsEnabled      *bool               `json:"task_rewards_enabled,omitempty"`
}

// Apply накладывает непустые поля обновления на настройки.
// Списки приложений и сайтов заменяются целиком и дедуплицируются.
func (u SettingsUpdate) Apply(s *ChildSettings) {
	if u.ScreenTimeLimit != nil {
		s.ScreenTimeLimit = *u.ScreenTimeLimit
	}
	if u.AllowedApps != nil {
		s.AllowedApps = dedupe(u.AllowedApps)
	}
	if u.BlockedApps != nil {
		s.BlockedApps = dedupe(u.BlockedApps)
	}
	if u.AllowedWebsites != nil {
		s.AllowedWebsites = dedupe(u.AllowedWebsites)
	}
	if u.BlockedWebsites != nil {
		s.BlockedWebsites = dedupe(u.BlockedWebsites)
	}
	if u.Bedtime != nil {
		s.Bedtime = *u.Bedtime
	}
	if u.WakeTime != nil {
		s.WakeTime = *u.WakeTime
	}
	if u.ContentFilterLevel != nil {
		s.ContentFilterLevel = *u.ContentFilterLevel
	}
	if u.HomeworkMode != nil {
		s.HomeworkMode = *u.HomeworkMode
	}
	if u.LocationTrackingEnabled != nil {
		s.LocationTrackingEnabled = *u.LocationTrackingEnabled
	}
	if u.TaskRewardsEnabled != nil {
		s.TaskRewardsEnabled = *u.TaskRewardsEnabled
	}
}

// dedupe убирает дубликаты, сохраняя порядок первого вхождения
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
