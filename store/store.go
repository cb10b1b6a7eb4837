package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"SafeKidsMobile/models"
)

var (
	// ErrNotAuthenticated возвращается доменными действиями, вызванными без входа
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAuthInProgress возвращается, если auth-действие вызвано, пока другое еще не завершилось
	ErrAuthInProgress = errors.New("authentication already in progress")

	// ErrBiometricNotSetUp возвращается при биометрическом входе без сохраненных учетных данных
	ErrBiometricNotSetUp = errors.New("biometric login is not set up")

	// ErrBiometricUnavailable возвращается, когда платформа не поддерживает биометрию
	ErrBiometricUnavailable = errors.New("biometric authentication is unavailable")

	// ErrProfileNotFound возвращается при операции над несуществующим профилем ребенка
	ErrProfileNotFound = errors.New("child profile not found")
)

// Store — единственный владелец состояния сессии: аккаунта родителя и
// профилей детей. Все мутации проходят через именованные действия; каждое
// действие либо полностью фиксирует результат (память + персистентность),
// либо оставляет состояние нетронутым.
type Store struct {
	gateway     AuthGateway
	credentials CredentialCache
	biometric   Authenticator
	backing     Backing

	mu                 sync.Mutex
	currentUser        *models.User
	isAuthenticated    bool
	isLoading          bool
	childProfiles      []models.ChildProfile
	activeChildProfile *models.ChildProfile
}

// New создает пустой Store. Перед первым использованием вызовите Hydrate.
func New(gateway AuthGateway, credentials CredentialCache, biometric Authenticator, backing Backing) *Store {
	return &Store{
		gateway:     gateway,
		credentials: credentials,
		biometric:   biometric,
		backing:     backing,
	}
}

// State — снимок состояния сессии для чтения из UI
type State struct {
	CurrentUser        *models.User
	IsAuthenticated    bool
	IsLoading          bool
	ChildProfiles      []models.ChildProfile
	ActiveChildProfile *models.ChildProfile
}

// Snapshot возвращает копию текущего состояния
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		CurrentUser:        copyUser(s.currentUser),
		IsAuthenticated:    s.isAuthenticated,
		IsLoading:          s.isLoading,
		ChildProfiles:      copyProfiles(s.childProfiles),
		ActiveChildProfile: copyProfile(s.activeChildProfile),
	}
}

// IsAuthenticated сообщает, выполнен ли вход
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

// IsLoading сообщает, выполняется ли сейчас auth-действие
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// CurrentUser возвращает копию текущего пользователя или nil
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.currentUser)
}

// ChildProfiles возвращает копию списка профилей в серверном порядке
func (s *Store) ChildProfiles() []models.ChildProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfiles(s.childProfiles)
}

// ActiveChildProfile возвращает копию выбранного профиля или nil ("все дети")
func (s *Store) ActiveChildProfile() *models.ChildProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProfile(s.activeChildProfile)
}

// acquireLoading выставляет isLoading, если другое auth-действие не выполняется
func (s *Store) acquireLoading() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isLoading {
		return ErrAuthInProgress
	}
	s.isLoading = true
	return nil
}

// releaseLoading сбрасывает isLoading на всех путях выхода
func (s *Store) releaseLoading() {
	s.mu.Lock()
	s.isLoading = false
	s.mu.Unlock()
}

// guard перехватывает панику удаленного вызова и превращает ее в ошибку,
// чтобы действие никогда не роняло процесс
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("remote call panic: %v", r)
		}
	}()
	return fn()
}

// Login выполняет вход по email и паролю. При успехе заменяет пользователя и
// список профилей авторитетными данными сервера, при ошибке не меняет ничего.
func (s *Store) Login(ctx context.Context, credentials models.LoginCredentials) error {
	if err := s.acquireLoading(); err != nil {
		return err
	}
	defer s.releaseLoading()
	return s.login(ctx, credentials)
}

// login — общая часть Login и LoginWithBiometric, без loading-флага
func (s *Store) login(ctx context.Context, credentials models.LoginCredentials) error {
	var data UserData
	err := guard(func() error {
		var callErr error
		data, callErr = s.gateway.Login(ctx, credentials)
		return callErr
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	user := data.User
	s.currentUser = &user
	s.childProfiles = copyProfiles(data.ChildProfiles)
	s.isAuthenticated = true
	s.reconcileActiveLocked()
	s.persistLocked()
	s.mu.Unlock()

	// Сохраняем учетные данные для входа по биометрии
	if err := s.credentials.Store(credentials.Email, credentials.Password); err != nil {
		log.Printf("[Store] Не удалось сохранить учетные данные: %v", err)
	}

	return nil
}

// LoginWithBiometric выполняет вход по биометрии: сначала платформенная
// проверка, затем обычный вход с сохраненными учетными данными.
// Успех биометрии сам по себе не аутентифицирует.
func (s *Store) LoginWithBiometric(ctx context.Context) error {
	if err := s.acquireLoading(); err != nil {
		return err
	}
	defer s.releaseLoading()

	if s.biometric == nil || !s.biometric.IsAvailable() {
		return ErrBiometricUnavailable
	}
	if err := s.biometric.Authenticate(ctx); err != nil {
		return err
	}

	credentials, err := s.credentials.Retrieve()
	if err != nil {
		return ErrBiometricNotSetUp
	}

	return s.login(ctx, credentials)
}

// Register создает новый аккаунт. При успехе пользователь авторизован,
// список профилей пуст.
func (s *Store) Register(ctx context.Context, credentials models.RegisterCredentials) error {
	if err := s.acquireLoading(); err != nil {
		return err
	}
	defer s.releaseLoading()

	var user models.User
	err := guard(func() error {
		var callErr error
		user, callErr = s.gateway.Register(ctx, credentials)
		return callErr
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.currentUser = &user
	s.childProfiles = []models.ChildProfile{}
	s.activeChildProfile = nil
	s.isAuthenticated = true
	s.persistLocked()
	s.mu.Unlock()

	if err := s.credentials.Store(credentials.Email, credentials.Password); err != nil {
		log.Printf("[Store] Не удалось сохранить учетные данные: %v", err)
	}

	return nil
}

// Logout завершает сессию. Удаленный вызов — best-effort: локальное состояние
// очищается всегда, даже если сервер недоступен.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.acquireLoading(); err != nil {
		return err
	}
	defer s.releaseLoading()

	if err := guard(func() error { return s.gateway.Logout(ctx) }); err != nil {
		log.Printf("[Store] Ошибка удаленного выхода (игнорируется): %v", err)
	}

	s.mu.Lock()
	s.currentUser = nil
	s.childProfiles = nil
	s.activeChildProfile = nil
	s.isAuthenticated = false
	s.mu.Unlock()

	if err := s.backing.Delete(storageKey); err != nil {
		log.Printf("[Store] Не удалось очистить сохраненное состояние: %v", err)
	}
	if err := s.credentials.Clear(); err != nil {
		log.Printf("[Store] Не удалось очистить учетные данные: %v", err)
	}

	return nil
}

// CreateChildProfile создает профиль ребенка на сервере и добавляет его в
// конец списка. Откат побочных эффектов (DNS-конфигурации) — обязанность
// сервера, store видит только совокупный результат.
//
// Защиты от параллельного двойного вызова нет: вызывающая сторона обязана
// блокировать контрол на время операции.
func (s *Store) CreateChildProfile(ctx context.Context, draft models.ChildProfileDraft) (models.ChildProfile, error) {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return models.ChildProfile{}, ErrNotAuthenticated
	}
	s.mu.Unlock()

	var created models.ChildProfile
	err := guard(func() error {
		var callErr error
		created, callErr = s.gateway.CreateChildProfile(ctx, draft)
		return callErr
	})
	if err != nil {
		return models.ChildProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		// Сессия завершилась, пока шел запрос — результат не фиксируем
		return models.ChildProfile{}, ErrNotAuthenticated
	}
	replaced := false
	for i := range s.childProfiles {
		if s.childProfiles[i].ID == created.ID {
			s.childProfiles[i] = created
			replaced = true
			break
		}
	}
	if !replaced {
		s.childProfiles = append(s.childProfiles, created)
	}
	s.persistLocked()
	return created, nil
}

// UpdateChildProfile обновляет профиль на сервере, затем накладывает те же
// поля на локальную запись (слияние по полям, не замена). Если обновляется
// активный профиль, слияние применяется и к нему.
func (s *Store) UpdateChildProfile(ctx context.Context, id string, updates models.ProfileUpdate) error {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.indexOfLocked(id) < 0 {
		s.mu.Unlock()
		return ErrProfileNotFound
	}
	s.mu.Unlock()

	err := guard(func() error {
		_, callErr := s.gateway.UpdateChildProfile(ctx, id, updates)
		return callErr
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		return ErrProfileNotFound
	}
	updates.Apply(&s.childProfiles[i])
	if s.activeChildProfile != nil && s.activeChildProfile.ID == id {
		updates.Apply(s.activeChildProfile)
	}
	s.persistLocked()
	return nil
}

// DeleteChildProfile удаляет профиль на сервере и из списка. Если удален
// активный профиль, выбор сбрасывается в том же обновлении.
func (s *Store) DeleteChildProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.indexOfLocked(id) < 0 {
		s.mu.Unlock()
		return ErrProfileNotFound
	}
	s.mu.Unlock()

	if err := guard(func() error { return s.gateway.DeleteChildProfile(ctx, id) }); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i >= 0 {
		s.childProfiles = append(s.childProfiles[:i], s.childProfiles[i+1:]...)
	}
	if s.activeChildProfile != nil && s.activeChildProfile.ID == id {
		s.activeChildProfile = nil
	}
	s.persistLocked()
	return nil
}

// SetActiveChildProfile выбирает профиль для отображения. nil означает
// режим "все дети". Удаленных вызовов нет.
func (s *Store) SetActiveChildProfile(profile *models.ChildProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile == nil {
		s.activeChildProfile = nil
		s.persistLocked()
		return nil
	}

	// Активным может стать только профиль из текущего списка
	i := s.indexOfLocked(profile.ID)
	if i < 0 {
		return ErrProfileNotFound
	}
	selected := s.childProfiles[i]
	s.activeChildProfile = &selected
	s.persistLocked()
	return nil
}

// EnableBiometric включает вход по биометрии. Требует доступной платформенной
// биометрии и подтверждения пользователя, иначе возвращает ошибку.
func (s *Store) EnableBiometric(ctx context.Context) error {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.mu.Unlock()

	if s.biometric == nil || !s.biometric.IsAvailable() {
		return ErrBiometricUnavailable
	}
	if err := s.biometric.Authenticate(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return ErrNotAuthenticated
	}
	s.currentUser.BiometricEnabled = true
	s.persistLocked()
	return nil
}

// DisableBiometric выключает вход по биометрии и чистит сохраненные
// учетные данные
func (s *Store) DisableBiometric(ctx context.Context) error {
	if s.biometric == nil || !s.biometric.IsAvailable() {
		return ErrBiometricUnavailable
	}

	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.currentUser.BiometricEnabled = false
	s.persistLocked()
	s.mu.Unlock()

	if err := s.credentials.Clear(); err != nil {
		log.Printf("[Store] Не удалось очистить учетные данные: %v", err)
	}
	return nil
}

// RefreshUserData запрашивает актуальные данные с сервера и заменяет
// локальные копии целиком (авторитетное обновление, не слияние).
// Без входа — no-op.
func (s *Store) RefreshUserData(ctx context.Context) error {
	s.mu.Lock()
	if s.currentUser == nil {
		s.mu.Unlock()
		return nil
	}
	userID := s.currentUser.ID
	s.mu.Unlock()

	var data UserData
	err := guard(func() error {
		var callErr error
		data, callErr = s.gateway.GetUserData(ctx, userID)
		return callErr
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		// Выход случился, пока шел запрос
		return nil
	}
	user := data.User
	s.currentUser = &user
	s.childProfiles = copyProfiles(data.ChildProfiles)
	s.isAuthenticated = true
	s.reconcileActiveLocked()
	s.persistLocked()
	return nil
}

// indexOfLocked ищет профиль по id. Вызывается под mu.
func (s *Store) indexOfLocked(id string) int {
	for i := range s.childProfiles {
		if s.childProfiles[i].ID == id {
			return i
		}
	}
	return -1
}

// reconcileActiveLocked заново привязывает активный профиль к свежему списку:
// берет новую версию по id или сбрасывает выбор, если профиль пропал.
// Вызывается под mu.
func (s *Store) reconcileActiveLocked() {
	if s.activeChildProfile == nil {
		return
	}
	i := s.indexOfLocked(s.activeChildProfile.ID)
	if i < 0 {
		s.activeChildProfile = nil
		return
	}
	fresh := s.childProfiles[i]
	s.activeChildProfile = &fresh
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func copyProfile(p *models.ChildProfile) *models.ChildProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func copyProfiles(profiles []models.ChildProfile) []models.ChildProfile {
	if profiles == nil {
		return []models.ChildProfile{}
	}
	c := make([]models.ChildProfile, len(profiles))
	copy(c, profiles)
	return c
}
