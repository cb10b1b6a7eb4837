package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"SafeKidsMobile/keychain"
	"SafeKidsMobile/models"
)

// --- mock-реализации коллабораторов ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Login(ctx context.Context, credentials models.LoginCredentials) (UserData, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(UserData), args.Error(1)
}

func (m *MockGateway) Register(ctx context.Context, credentials models.RegisterCredentials) (models.User, error) {
	args := m.Called(ctx, credentials)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) GetUserData(ctx context.Context, userID string) (UserData, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(UserData), args.Error(1)
}

func (m *MockGateway) CreateChildProfile(ctx context.Context, draft models.ChildProfileDraft) (models.ChildProfile, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.ChildProfile), args.Error(1)
}

func (m *MockGateway) UpdateChildProfile(ctx context.Context, id string, updates models.ProfileUpdate) (models.ChildProfile, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(models.ChildProfile), args.Error(1)
}

func (m *MockGateway) DeleteChildProfile(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// panicGateway роняет панику на любом вызове Login
type panicGateway struct {
	MockGateway
}

func (g *panicGateway) Login(ctx context.Context, credentials models.LoginCredentials) (UserData, error) {
	panic("connection pool exhausted")
}

type MockCredentialCache struct {
	mock.Mock
}

func (m *MockCredentialCache) Store(email, password string) error {
	args := m.Called(email, password)
	return args.Error(0)
}

func (m *MockCredentialCache) Retrieve() (models.LoginCredentials, error) {
	args := m.Called()
	return args.Get(0).(models.LoginCredentials), args.Error(1)
}

func (m *MockCredentialCache) Clear() error {
	args := m.Called()
	return args.Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAuthenticator) Authenticate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memBacking — простое in-memory хранилище для тестов персистентности
type memBacking struct {
	data map[string][]byte
}

func newMemBacking() *memBacking {
	return &memBacking{data: make(map[string][]byte)}
}

func (b *memBacking) Get(key string) ([]byte, error) {
	value, ok := b.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (b *memBacking) Set(key string, value []byte) error {
	b.data[key] = value
	return nil
}

func (b *memBacking) Delete(key string) error {
	delete(b.data, key)
	return nil
}

// --- фикстуры ---

func testUser() models.User {
	return models.User{
		ID:           "user-1",
		Email:        "parent@example.com",
		Name:         "Анна",
		Subscription: models.SubscriptionFree,
	}
}

func testProfile(id, name string) models.ChildProfile {
	return models.ChildProfile{
		ID:          id,
		ParentID:    "user-1",
		Name:        name,
		DateOfBirth: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		AgeGroup:    models.AgeGroupChild,
		Settings:    models.DefaultChildSettings(models.AgeGroupChild),
	}
}

func newTestStore(gateway AuthGateway, credentials CredentialCache, biometric Authenticator) (*Store, *memBacking) {
	backing := newMemBacking()
	return New(gateway, credentials, biometric, backing), backing
}

// loggedInStore возвращает store с выполненным входом и двумя детьми
func loggedInStore(t *testing.T) (*Store, *MockGateway, *MockCredentialCache, *memBacking) {
	t.Helper()

	gateway := new(MockGateway)
	credentials := new(MockCredentialCache)
	store, backing := newTestStore(gateway, credentials, nil)

	gateway.On("Login", mock.Anything, mock.Anything).Return(UserData{
		User:          testUser(),
		ChildProfiles: []models.ChildProfile{testProfile("child-1", "Миша"), testProfile("child-2", "Катя")},
	}, nil).Once()
	credentials.On("Store", "parent@example.com", "secret123").Return(nil).Once()

	err := store.Login(context.Background(), models.LoginCredentials{Email: "parent@example.com", Password: "secret123"})
	assert.NoError(t, err)

	return store, gateway, credentials, backing
}

// --- вход ---

func TestLoginSuccessCommitsServerData(t *testing.T) {
	gateway := new(MockGateway)
	credentials := new(MockCredentialCache)
	store, backing := newTestStore(gateway, credentials, nil)

	profiles := []models.ChildProfile{testProfile("child-1", "Миша")}
	gateway.On("Login", mock.Anything, mock.Anything).Return(UserData{User: testUser(), ChildProfiles: profiles}, nil)
	credentials.On("Store", "parent@example.com", "secret123").Return(nil)

	err := store.Login(context.Background(), models.LoginCredentials{Email: "parent@example.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Equal(t, "user-1", store.CurrentUser().ID)
	assert.Len(t, store.ChildProfiles(), 1)

	// Состояние записано в backing
	blob, err := backing.Get(storageKey)
	assert.NoError(t, err)
	var saved persistedState
	assert.NoError(t, json.Unmarshal(blob, &saved))
	assert.True(t, saved.IsAuthenticated)
	assert.Equal(t, "user-1", saved.User.ID)

	credentials.AssertExpectations(t)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	gateway := new(MockGateway)
	store, backing := newTestStore(gateway, new(MockCredentialCache), nil)

	gateway.On("Login", mock.Anything, mock.Anything).Return(UserData{}, errors.New("invalid credentials"))

	err := store.Login(context.Background(), models.LoginCredentials{Email: "parent@example.com", Password: "wrong"})

	assert.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, store.ChildProfiles())
	assert.Empty(t, backing.data)
}

func TestLoginGatewayPanicBecomesError(t *testing.T) {
	gateway := new(panicGateway)
	store, _ := newTestStore(gateway, new(MockCredentialCache), nil)

	err := store.Login(context.Background(), models.LoginCredentials{Email: "parent@example.com", Password: "secret123"})

	// Паника удаленного вызова превращается в ошибку, процесс жив
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "remote call panic")
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
}

func TestLoginRejectedWhileAnotherAuthActionRuns(t *testing.T) {
	gateway := new(MockGateway)
	store, _ := newTestStore(gateway, new(MockCredentialCache), nil)

	started := make(chan struct{})
	release := make(chan struct{})
	gateway.On("Login", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return(UserData{}, errors.New("aborted"))

	go store.Login(context.Background(), models.LoginCredentials{Email: "a@b.c", Password: "p"})
	<-started

	assert.True(t, store.IsLoading())
	err := store.Login(context.Background(), models.LoginCredentials{Email: "a@b.c", Password: "p"})
	assert.ErrorIs(t, err, ErrAuthInProgress)

	close(release)
}

// --- биометрия ---

func TestBiometricLoginWithoutStoredCredentials(t *testing.T) {
	gateway := new(MockGateway)
	credentials := new(MockCredentialCache)
	biometric := new(MockAuthenticator)
	store, _ := newTestStore(gateway, credentials, biometric)

	biometric.On("IsAvailable").Return(true)
	biometric.On("Authenticate", mock.Anything).Return(nil)
	credentials.On("Retrieve").Return(models.LoginCredentials{}, keychain.ErrNoCredentials)

	err := store.LoginWithBiometric(context.Background())

	assert.ErrorIs(t, err, ErrBiometricNotSetUp)
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
	// До шлюза дело не дошло
	gateway.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestBiometricLoginUnavailablePlatform(t *testing.T) {
	gateway := new(MockGateway)
	biometric := new(MockAuthenticator)
	store, _ := newTestStore(gateway, new(MockCredentialCache), biometric)

	biometric.On("IsAvailable").Return(false)

	err := store.LoginWithBiometric(context.Background())

	assert.ErrorIs(t, err, ErrBiometricUnavailable)
	gateway.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestBiometricLoginSuccessUsesCachedCredentials(t *testing.T) {
	gateway := new(MockGateway)
	credentials := new(MockCredentialCache)
	biometric := new(MockAuthenticator)
	store, _ := newTestStore(gateway, credentials, biometric)

	cached := models.LoginCredentials{Email: "parent@example.com", Password: "secret123"}
	biometric.On("IsAvailable").Return(true)
	biometric.On("Authenticate", mock.Anything).Return(nil)
	credentials.On("Retrieve").Return(cached, nil)
	gateway.On("Login", mock.Anything, cached).Return(UserData{User: testUser()}, nil)
	credentials.On("Store", cached.Email, cached.Password).Return(nil)

	err := store.LoginWithBiometric(context.Background())

	assert.NoError(t, err)
	assert.True(t, store.IsAuthenticated())
	gateway.AssertExpectations(t)
}

func TestBiometricRejectionDoesNotAuthenticate(t *testing.T) {
	gateway := new(MockGateway)
	biometric := new(MockAuthenticator)
	store, _ := newTestStore(gateway, new(MockCredentialCache), biometric)

	biometric.On("IsAvailable").Return(true)
	biometric.On("Authenticate", mock.Anything).Return(errors.New("user cancelled"))

	err := store.LoginWithBiometric(context.Background())

	assert.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	gateway.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

// --- регистрация ---

func TestRegisterCommitsEmptyProfileList(t *testing.T) {
	gateway := new(MockGateway)
	credentials := new(MockCredentialCache)
	store, _ := newTestStore(gateway, credentials, nil)

	gateway.On("Register", mock.Anything, mock.Anything).Return(testUser(), nil)
	credentials.On("Store", "parent@example.com", "secret123").Return(nil)

	err := store.Register(context.Background(), models.RegisterCredentials{
		Email: "parent@example.com", Password: "secret123", Name: "Анна",
	})

	assert.NoError(t, err)
	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, store.ChildProfiles())
	assert.Nil(t, store.ActiveChildProfile())
}

func TestRegisterFailureIsNoOp(t *testing.T) {
	gateway := new(MockGateway)
	store, _ := newTestStore(gateway, new(MockCredentialCache), nil)

	gateway.On("Register", mock.Anything, mock.Anything).Return(models.User{}, errors.New("email taken"))

	err := store.Register(context.Background(), models.RegisterCredentials{
		Email: "parent@example.com", Password: "secret123", Name: "Анна",
	})

	assert.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsLoading())
}

// --- выход ---

func TestLogoutClearsEverything(t *testing.T) {
	store, gateway, credentials, backing := loggedInStore(t)

	gateway.On("Logout", mock.Anything).Return(nil)
	credentials.On("Clear").Return(nil)

	err := store.Logout(context.Background())

	assert.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, store.ChildProfiles())
	assert.Nil(t, store.ActiveChildProfile())

	_, err = backing.Get(storageKey)
	assert.Error(t, err)
	credentials.AssertExpectations(t)
}

func TestLogoutSucceedsEvenIfGatewayFails(t *testing.T) {
	store, gateway, credentials, _ := loggedInStore(t)

	gateway.On("Logout", mock.Anything).Return(errors.New("network down"))
	credentials.On("Clear").Return(nil)

	err := store.Logout(context.Background())

	// Локальный выход не зависит от сервера
	assert.NoError(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
}

// --- профили детей ---

func TestCreateChildProfileAppendsAfterServerSuccess(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	created := testProfile("child-3", "Оля")
	gateway.On("CreateChildProfile", mock.Anything, mock.Anything).Return(created, nil)

	profile, err := store.CreateChildProfile(context.Background(), models.ChildProfileDraft{
		Name: "Оля", DateOfBirth: "2018-03-10", AgeGroup: models.AgeGroupChild,
	})

	assert.NoError(t, err)
	assert.Equal(t, "child-3", profile.ID)
	profiles := store.ChildProfiles()
	assert.Len(t, profiles, 3)
	assert.Equal(t, "child-3", profiles[2].ID)
}

func TestCreateChildProfileServerFailureIsNoOp(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	gateway.On("CreateChildProfile", mock.Anything, mock.Anything).Return(models.ChildProfile{}, errors.New("server error"))

	_, err := store.CreateChildProfile(context.Background(), models.ChildProfileDraft{Name: "Оля"})

	assert.Error(t, err)
	assert.Len(t, store.ChildProfiles(), 2)
}

func TestCreateChildProfileRequiresAuth(t *testing.T) {
	gateway := new(MockGateway)
	store, _ := newTestStore(gateway, new(MockCredentialCache), nil)

	_, err := store.CreateChildProfile(context.Background(), models.ChildProfileDraft{Name: "Оля"})

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	gateway.AssertNotCalled(t, "CreateChildProfile", mock.Anything, mock.Anything)
}

func TestCreateChildProfileReplacesDuplicateID(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	// Сервер вернул профиль с уже известным id; список не должен содержать дубликат
	duplicate := testProfile("child-1", "Миша (новый)")
	gateway.On("CreateChildProfile", mock.Anything, mock.Anything).Return(duplicate, nil)

	_, err := store.CreateChildProfile(context.Background(), models.ChildProfileDraft{Name: "Миша"})

	assert.NoError(t, err)
	profiles := store.ChildProfiles()
	assert.Len(t, profiles, 2)
	assert.Equal(t, "Миша (новый)", profiles[0].Name)
}

func TestUpdateChildProfileMergesFields(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	newName := "Михаил"
	updates := models.ProfileUpdate{Name: &newName}
	gateway.On("UpdateChildProfile", mock.Anything, "child-1", updates).Return(models.ChildProfile{}, nil)

	err := store.UpdateChildProfile(context.Background(), "child-1", updates)

	assert.NoError(t, err)
	profiles := store.ChildProfiles()
	assert.Equal(t, "Михаил", profiles[0].Name)
	// Остальные поля не тронуты
	assert.Equal(t, models.AgeGroupChild, profiles[0].AgeGroup)
	assert.Equal(t, "child-2", profiles[1].ID)
	assert.Equal(t, "Катя", profiles[1].Name)
}

func TestUpdateActiveChildProfileKeepsActiveInSync(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	active := testProfile("child-2", "Катя")
	assert.NoError(t, store.SetActiveChildProfile(&active))

	limit := 90
	updates := models.ProfileUpdate{Settings: &models.SettingsUpdate{ScreenTimeLimit: &limit}}
	gateway.On("UpdateChildProfile", mock.Anything, "child-2", updates).Return(models.ChildProfile{}, nil)

	err := store.UpdateChildProfile(context.Background(), "child-2", updates)

	assert.NoError(t, err)
	assert.Equal(t, 90, store.ActiveChildProfile().Settings.ScreenTimeLimit)
	assert.Equal(t, 90, store.ChildProfiles()[1].Settings.ScreenTimeLimit)
}

func TestUpdateChildProfileFailureIsNoOp(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	newName := "Михаил"
	updates := models.ProfileUpdate{Name: &newName}
	gateway.On("UpdateChildProfile", mock.Anything, "child-1", updates).Return(models.ChildProfile{}, errors.New("server error"))

	err := store.UpdateChildProfile(context.Background(), "child-1", updates)

	assert.Error(t, err)
	assert.Equal(t, "Миша", store.ChildProfiles()[0].Name)
}

func TestUpdateUnknownProfileSkipsGateway(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	newName := "X"
	err := store.UpdateChildProfile(context.Background(), "no-such-child", models.ProfileUpdate{Name: &newName})

	assert.ErrorIs(t, err, ErrProfileNotFound)
	gateway.AssertNotCalled(t, "UpdateChildProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteChildProfileClearsActiveSelection(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	active := testProfile("child-1", "Миша")
	assert.NoError(t, store.SetActiveChildProfile(&active))

	gateway.On("DeleteChildProfile", mock.Anything, "child-1").Return(nil)

	err := store.DeleteChildProfile(context.Background(), "child-1")

	assert.NoError(t, err)
	profiles := store.ChildProfiles()
	assert.Len(t, profiles, 1)
	assert.Equal(t, "child-2", profiles[0].ID)
	// Активный профиль сброшен тем же действием
	assert.Nil(t, store.ActiveChildProfile())
}

func TestDeleteOtherProfileKeepsActiveSelection(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	active := testProfile("child-2", "Катя")
	assert.NoError(t, store.SetActiveChildProfile(&active))

	gateway.On("DeleteChildProfile", mock.Anything, "child-1").Return(nil)

	err := store.DeleteChildProfile(context.Background(), "child-1")

	assert.NoError(t, err)
	assert.Equal(t, "child-2", store.ActiveChildProfile().ID)
}

func TestDeleteChildProfileFailureIsNoOp(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	gateway.On("DeleteChildProfile", mock.Anything, "child-1").Return(errors.New("server error"))

	err := store.DeleteChildProfile(context.Background(), "child-1")

	assert.Error(t, err)
	assert.Len(t, store.ChildProfiles(), 2)
}

// --- активный профиль ---

func TestSetActiveChildProfileRequiresMembership(t *testing.T) {
	store, _, _, _ := loggedInStore(t)

	stranger := testProfile("child-99", "Чужой")
	err := store.SetActiveChildProfile(&stranger)

	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Nil(t, store.ActiveChildProfile())
}

func TestSetActiveChildProfileNilMeansAllChildren(t *testing.T) {
	store, _, _, _ := loggedInStore(t)

	active := testProfile("child-1", "Миша")
	assert.NoError(t, store.SetActiveChildProfile(&active))
	assert.NotNil(t, store.ActiveChildProfile())

	assert.NoError(t, store.SetActiveChildProfile(nil))
	assert.Nil(t, store.ActiveChildProfile())
}

// --- биометрия (настройка) ---

func TestEnableBiometricSetsFlag(t *testing.T) {
	store, _, _, _ := loggedInStore(t)
	biometric := new(MockAuthenticator)
	store.biometric = biometric

	biometric.On("IsAvailable").Return(true)
	biometric.On("Authenticate", mock.Anything).Return(nil)

	err := store.EnableBiometric(context.Background())

	assert.NoError(t, err)
	assert.True(t, store.CurrentUser().BiometricEnabled)
}

func TestDisableBiometricClearsCredentials(t *testing.T) {
	store, _, credentials, _ := loggedInStore(t)
	biometric := new(MockAuthenticator)
	store.biometric = biometric

	biometric.On("IsAvailable").Return(true)
	credentials.On("Clear").Return(nil)

	err := store.DisableBiometric(context.Background())

	assert.NoError(t, err)
	assert.False(t, store.CurrentUser().BiometricEnabled)
	credentials.AssertExpectations(t)
}

// --- обновление данных ---

func TestRefreshUserDataReplacesWholesale(t *testing.T) {
	store, gateway, _, _ := loggedInStore(t)

	active := testProfile("child-2", "Катя")
	assert.NoError(t, store.SetActiveChildProfile(&active))

	// Сервер больше не знает о child-2
	fresh := UserData{
		User:          testUser(),
		ChildProfiles: []models.ChildProfile{testProfile("child-1", "Миша")},
	}
	gateway.On("GetUserData", mock.Anything, "user-1").Return(fresh, nil)

	err := store.RefreshUserData(context.Background())

	assert.NoError(t, err)
	assert.Len(t, store.ChildProfiles(), 1)
	// Активный профиль пропал из списка и был сброшен
	assert.Nil(t, store.ActiveChildProfile())
}

func TestRefreshUserDataIsNoOpWhenLoggedOut(t *testing.T) {
	gateway := new(MockGateway)
	store, _ := newTestStore(gateway, new(MockCredentialCache), nil)

	err := store.RefreshUserData(context.Background())

	assert.NoError(t, err)
	gateway.AssertNotCalled(t, "GetUserData", mock.Anything, mock.Anything)
}

// --- персистентность ---

func TestHydrateRestoresSavedSession(t *testing.T) {
	backing := newMemBacking()
	user := testUser()
	active := testProfile("child-1", "Миша")
	saved := persistedState{
		User:               &user,
		IsAuthenticated:    true,
		ChildProfiles:      []models.ChildProfile{testProfile("child-1", "Миша"), testProfile("child-2", "Катя")},
		ActiveChildProfile: &active,
	}
	blob, err := json.Marshal(saved)
	assert.NoError(t, err)
	assert.NoError(t, backing.Set(storageKey, blob))

	store := New(new(MockGateway), new(MockCredentialCache), nil, backing)
	store.Hydrate()

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "user-1", store.CurrentUser().ID)
	assert.Len(t, store.ChildProfiles(), 2)
	assert.Equal(t, "child-1", store.ActiveChildProfile().ID)
}

func TestHydrateNormalizesCorruptInvariants(t *testing.T) {
	backing := newMemBacking()
	orphanActive := testProfile("ghost", "Призрак")
	saved := persistedState{
		User:            nil,
		IsAuthenticated: true, // противоречит user == nil
		ChildProfiles: []models.ChildProfile{
			testProfile("child-1", "Миша"),
			testProfile("child-1", "Дубликат"),
		},
		ActiveChildProfile: &orphanActive,
	}
	blob, err := json.Marshal(saved)
	assert.NoError(t, err)
	assert.NoError(t, backing.Set(storageKey, blob))

	store := New(new(MockGateway), new(MockCredentialCache), nil, backing)
	store.Hydrate()

	// Флаг приводится к наличию пользователя
	assert.False(t, store.IsAuthenticated())
	// Дубликаты id схлопнуты, остается первое вхождение
	profiles := store.ChildProfiles()
	assert.Len(t, profiles, 1)
	assert.Equal(t, "Миша", profiles[0].Name)
	// Активный профиль без записи в списке сброшен
	assert.Nil(t, store.ActiveChildProfile())
}

func TestHydrateIgnoresCorruptBlob(t *testing.T) {
	backing := newMemBacking()
	assert.NoError(t, backing.Set(storageKey, []byte("{not json")))

	store := New(new(MockGateway), new(MockCredentialCache), nil, backing)
	store.Hydrate()

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
}

func TestHydrateWithEmptyBackingStartsClean(t *testing.T) {
	store, _ := newTestStore(new(MockGateway), new(MockCredentialCache), nil)
	store.Hydrate()

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, store.ChildProfiles())
}
