package services

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"

	"SafeKidsMobile/models"
)

// NotificationService отправляет push-уведомления через Firebase Cloud Messaging
type NotificationService struct {
	Client *messaging.Client
}

func NewNotificationService(client *messaging.Client) *NotificationService {
	return &NotificationService{Client: client}
}

// NotifySettingsChanged сообщает устройству ребенка, что родитель изменил настройки
func (s *NotificationService) NotifySettingsChanged(profile models.ChildProfile) {
	s.send(profile.DeviceToken, map[string]string{
		"type":       "settings_changed",
		"profile_id": profile.ID,
	}, "Настройки обновлены", "Родитель изменил настройки твоего профиля")
}

// NotifyProfileRemoved сообщает устройству ребенка об удалении профиля
func (s *NotificationService) NotifyProfileRemoved(profile models.ChildProfile) {
	s.send(profile.DeviceToken, map[string]string{
		"type":       "profile_removed",
		"profile_id": profile.ID,
	}, "Профиль удален", "Твой профиль был удален родителем")
}

func (s *NotificationService) send(deviceToken string, data map[string]string, title, body string) {
	if s.Client == nil {
		log.Println("[FCM] Клиент не инициализирован, уведомление пропущено")
		return
	}
	if deviceToken == "" {
		log.Println("[FCM] У профиля нет device token, уведомление пропущено")
		return
	}

	message := &messaging.Message{
		Token: deviceToken,
		Data:  data,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	response, err := s.Client.Send(context.Background(), message)
	if err != nil {
		log.Printf("[FCM] Ошибка отправки уведомления: %v", err)
		return
	}
	log.Printf("[FCM] Уведомление отправлено: %s", response)
}
