package store

import (
	"log"

	"github.com/goccy/go-json"

	"SafeKidsMobile/models"
)

// storageKey — единственный ключ, под которым хранится состояние сессии
const storageKey = "session_state"

// persistedState — подмножество состояния, переживающее перезапуск процесса
type persistedState struct {
	User               *models.User          `json:"user"`
	IsAuthenticated    bool                  `json:"is_authenticated"`
	ChildProfiles      []models.ChildProfile `json:"child_profiles"`
	ActiveChildProfile *models.ChildProfile  `json:"active_child_profile"`
}

// persistLocked записывает снимок состояния в backing. Запись — write-behind:
// источник истины для текущего процесса находится в памяти, поэтому ошибка
// персистентности логируется, но не проваливает действие. Вызывается под mu.
func (s *Store) persistLocked() {
	snapshot := persistedState{
		User:               copyUser(s.currentUser),
		IsAuthenticated:    s.isAuthenticated,
		ChildProfiles:      copyProfiles(s.childProfiles),
		ActiveChildProfile: copyProfile(s.activeChildProfile),
	}

	blob, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[Store] Ошибка сериализации состояния: %v", err)
		return
	}
	if err := s.backing.Set(storageKey, blob); err != nil {
		log.Printf("[Store] Ошибка записи состояния: %v", err)
	}
}

// Hydrate восстанавливает состояние из backing при старте процесса.
// Отсутствующее или нечитаемое состояние — не ошибка: store просто
// стартует пустым. Инварианты нормализуются при загрузке.
func (s *Store) Hydrate() {
	blob, err := s.backing.Get(storageKey)
	if err != nil || len(blob) == 0 {
		return
	}

	var snapshot persistedState
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		log.Printf("[Store] Сохраненное состояние повреждено, пропускаем: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUser = snapshot.User
	// isAuthenticated обязан совпадать с наличием пользователя
	s.isAuthenticated = snapshot.User != nil

	// Дубликаты id отбрасываем, сохраняя порядок первого вхождения
	seen := make(map[string]bool, len(snapshot.ChildProfiles))
	profiles := make([]models.ChildProfile, 0, len(snapshot.ChildProfiles))
	for _, p := range snapshot.ChildProfiles {
		if !seen[p.ID] {
			seen[p.ID] = true
			profiles = append(profiles, p)
		}
	}
	s.childProfiles = profiles

	s.activeChildProfile = snapshot.ActiveChildProfile
	s.reconcileActiveLocked()
}
