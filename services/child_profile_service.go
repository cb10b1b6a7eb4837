package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"SafeKidsMobile/models"
	"SafeKidsMobile/repositories"
)

// Notifier доставляет push-уведомления на устройство ребенка
type Notifier interface {
	NotifySettingsChanged(profile models.ChildProfile)
	NotifyProfileRemoved(profile models.ChildProfile)
}

// EventBroadcaster рассылает события профилей подключенным клиентам родителя
type EventBroadcaster interface {
	BroadcastProfileEvent(parentID, eventType string, profile *models.ChildProfile, profileID string)
}

type ChildProfileService struct {
	ProfileRepo   repositories.ChildProfileRepository
	UserRepo      repositories.UserRepository
	Filtering     FilteringProvider
	Notifications Notifier
	Events        EventBroadcaster
}

func NewChildProfileService(profileRepo repositories.ChildProfileRepository, userRepo repositories.UserRepository, filtering FilteringProvider, notifications Notifier, events EventBroadcaster) *ChildProfileService {
	return &ChildProfileService{
		ProfileRepo:   profileRepo,
		UserRepo:      userRepo,
		Filtering:     filtering,
		Notifications: notifications,
		Events:        events,
	}
}

// CreateProfile создает профиль ребенка с настройками по умолчанию
// и заводит для него конфигурацию DNS-фильтрации
func (s *ChildProfileService) CreateProfile(parentID string, draft models.ChildProfileDraft) (models.ChildProfile, error) {
	if _, err := s.UserRepo.FindByID(parentID); err != nil {
		return models.ChildProfile{}, errors.New("parent not found")
	}

	dateOfBirth, err := time.Parse(time.RFC3339, draft.DateOfBirth)
	if err != nil {
		// Клиент может прислать только дату без времени
		dateOfBirth, err = time.Parse("2006-01-02", draft.DateOfBirth)
		if err != nil {
			return models.ChildProfile{}, errors.New("invalid date_of_birth format")
		}
	}

	// Профиль фильтрации заводим до записи в базу; без него профиль
	// ребенка все равно создается, фильтрацию можно включить позже
	var filterConfigID string
	if s.Filtering != nil {
		config, err := s.Filtering.CreateConfiguration(draft.Name, draft.AgeGroup)
		if err != nil {
			log.Printf("[ChildProfile] Не удалось создать конфигурацию фильтрации: %v", err)
		} else {
			filterConfigID = config.ID
		}
	}

	now := time.Now()
	profile := models.ChildProfile{
		ID:             uuid.NewString(),
		ParentID:       parentID,
		Name:           draft.Name,
		DateOfBirth:    dateOfBirth,
		ProfileImage:   draft.ProfileImage,
		PIN:            draft.PIN,
		DeviceToken:    draft.DeviceToken,
		AgeGroup:       draft.AgeGroup,
		FilterConfigID: filterConfigID,
		Settings:       models.DefaultChildSettings(draft.AgeGroup),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.ProfileRepo.Save(profile); err != nil {
		// Откатываем созданную конфигурацию, чтобы не копить сирот
		if s.Filtering != nil && filterConfigID != "" {
			if derr := s.Filtering.DeleteConfiguration(filterConfigID); derr != nil {
				log.Printf("[ChildProfile] Не удалось удалить конфигурацию %s после сбоя: %v", filterConfigID, derr)
			}
		}
		return models.ChildProfile{}, err
	}

	if s.Events != nil {
		s.Events.BroadcastProfileEvent(parentID, "child_profile_created", &profile, profile.ID)
	}

	return profile, nil
}

// UpdateProfile применяет частичное обновление к профилю ребенка.
// Поля, отсутствующие в обновлении, не меняются.
func (s *ChildProfileService) UpdateProfile(parentID, profileID string, updates models.ProfileUpdate) (models.ChildProfile, error) {
	profile, err := s.ProfileRepo.FindByID(profileID)
	if err != nil {
		return models.ChildProfile{}, errors.New("child profile not found")
	}
	if profile.ParentID != parentID {
		return models.ChildProfile{}, errors.New("child profile does not belong to this parent")
	}

	if updates.IsEmpty() {
		return profile, nil
	}

	updates.Apply(&profile)
	profile.UpdatedAt = time.Now()

	if err := s.ProfileRepo.Save(profile); err != nil {
		return models.ChildProfile{}, err
	}

	// Списки сайтов синхронизируем с DNS-фильтром после коммита
	if s.Filtering != nil && profile.FilterConfigID != "" && updates.Settings != nil {
		if err := s.Filtering.SyncLists(profile.FilterConfigID, profile.Settings); err != nil {
			log.Printf("[ChildProfile] Ошибка синхронизации списков фильтрации для %s: %v", profile.ID, err)
		}
	}

	if s.Notifications != nil && updates.Settings != nil {
		s.Notifications.NotifySettingsChanged(profile)
	}
	if s.Events != nil {
		s.Events.BroadcastProfileEvent(parentID, "child_profile_updated", &profile, profile.ID)
	}

	return profile, nil
}

// DeleteProfile удаляет профиль ребенка вместе с его конфигурацией фильтрации
func (s *ChildProfileService) DeleteProfile(parentID, profileID string) error {
	profile, err := s.ProfileRepo.FindByID(profileID)
	if err != nil {
		return errors.New("child profile not found")
	}
	if profile.ParentID != parentID {
		return errors.New("child profile does not belong to this parent")
	}

	if err := s.ProfileRepo.Delete(profile); err != nil {
		return err
	}

	if s.Filtering != nil && profile.FilterConfigID != "" {
		if err := s.Filtering.DeleteConfiguration(profile.FilterConfigID); err != nil {
			log.Printf("[ChildProfile] Не удалось удалить конфигурацию фильтрации %s: %v", profile.FilterConfigID, err)
		}
	}

	if s.Notifications != nil {
		s.Notifications.NotifyProfileRemoved(profile)
	}
	if s.Events != nil {
		s.Events.BroadcastProfileEvent(parentID, "child_profile_deleted", nil, profileID)
	}

	return nil
}

// ListProfiles возвращает всех детей родителя в порядке создания
func (s *ChildProfileService) ListProfiles(parentID string) ([]models.ChildProfile, error) {
	return s.ProfileRepo.FindByParentID(parentID)
}

// VerifyPIN проверяет PIN-код профиля ребенка
func (s *ChildProfileService) VerifyPIN(profileID, pin string) (bool, error) {
	profile, err := s.ProfileRepo.FindByID(profileID)
	if err != nil {
		return false, errors.New("child profile not found")
	}
	if profile.PIN == "" {
		return false, errors.New("pin is not set for this profile")
	}
	return profile.PIN == pin, nil
}
