// Package gateway — HTTP-клиент удаленного шлюза аутентификации.
// Реализует store.AuthGateway поверх REST API бэкенда.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"SafeKidsMobile/models"
	"SafeKidsMobile/store"
)

// requestTimeout — таймаут транспортного слоя. Store своих таймаутов не
// ставит: зависший запрос обязан завершиться здесь.
const requestTimeout = 30 * time.Second

// HTTPGateway держит токен сессии после входа и подставляет его
// в заголовок Authorization
type HTTPGateway struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	token string
}

// New создает шлюз для указанного адреса бэкенда
func New(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// authResponse — конверт ответов бэкенда на auth-запросы
type authResponse struct {
	Message       bool                  `json:"message"`
	Token         string                `json:"token"`
	User          models.User           `json:"user"`
	ChildProfiles []models.ChildProfile `json:"child_profiles"`
	Error         string                `json:"error"`
}

// profileResponse — конверт ответов бэкенда на операции с профилями
type profileResponse struct {
	Message bool                `json:"message"`
	Data    models.ChildProfile `json:"data"`
	Error   string              `json:"error"`
}

// Login выполняет вход и запоминает выданный токен
func (g *HTTPGateway) Login(ctx context.Context, credentials models.LoginCredentials) (store.UserData, error) {
	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/login/parent", credentials, &resp); err != nil {
		return store.UserData{}, err
	}

	g.setToken(resp.Token)
	return store.UserData{User: resp.User, ChildProfiles: resp.ChildProfiles}, nil
}

// Register создает аккаунт и запоминает выданный токен
func (g *HTTPGateway) Register(ctx context.Context, credentials models.RegisterCredentials) (models.User, error) {
	var resp authResponse
	if err := g.do(ctx, http.MethodPost, "/register/parent", credentials, &resp); err != nil {
		return models.User{}, err
	}

	g.setToken(resp.Token)
	return resp.User, nil
}

// Logout инвалидирует сессию на сервере и забывает токен
func (g *HTTPGateway) Logout(ctx context.Context) error {
	err := g.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	g.setToken("")
	return err
}

// GetUserData запрашивает актуального пользователя и список профилей
func (g *HTTPGateway) GetUserData(ctx context.Context, userID string) (store.UserData, error) {
	var resp authResponse
	if err := g.do(ctx, http.MethodGet, "/users/"+userID, nil, &resp); err != nil {
		return store.UserData{}, err
	}
	return store.UserData{User: resp.User, ChildProfiles: resp.ChildProfiles}, nil
}

// CreateChildProfile создает профиль ребенка на сервере
func (g *HTTPGateway) CreateChildProfile(ctx context.Context, draft models.ChildProfileDraft) (models.ChildProfile, error) {
	var resp profileResponse
	if err := g.do(ctx, http.MethodPost, "/child-profiles", draft, &resp); err != nil {
		return models.ChildProfile{}, err
	}
	return resp.Data, nil
}

// UpdateChildProfile отправляет частичное обновление профиля
func (g *HTTPGateway) UpdateChildProfile(ctx context.Context, id string, updates models.ProfileUpdate) (models.ChildProfile, error) {
	var resp profileResponse
	if err := g.do(ctx, http.MethodPut, "/child-profiles/"+id, updates, &resp); err != nil {
		return models.ChildProfile{}, err
	}
	return resp.Data, nil
}

// DeleteChildProfile удаляет профиль на сервере
func (g *HTTPGateway) DeleteChildProfile(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/child-profiles/"+id, nil, nil)
}

func (g *HTTPGateway) setToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *HTTPGateway) getToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// do выполняет запрос и разбирает JSON-ответ. Транспортные ошибки
// оборачиваются в "network error", ошибки API извлекаются из тела.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := g.getToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error  string `json:"error"`
			Errors string `json:"errors"`
		}
		if err := json.Unmarshal(payload, &apiErr); err == nil {
			if apiErr.Error != "" {
				return fmt.Errorf("%s", apiErr.Error)
			}
			if apiErr.Errors != "" {
				return fmt.Errorf("%s", apiErr.Errors)
			}
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
