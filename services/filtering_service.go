package services

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"

	"SafeKidsMobile/models"
)

// FilteringProvider выдает DNS-конфигурации контентной фильтрации для детей
type FilteringProvider interface {
	CreateConfiguration(childName string, ageGroup models.AgeGroup) (models.FilterConfig, error)
	DeleteConfiguration(configID string) error
	SyncLists(configID string, settings models.ChildSettings) error
}

// agePreset — стартовый набор фильтров для возрастной группы
type agePreset struct {
	BlockedCategories []string
	BlockedServices   []string
	SafeSearch        bool
	YoutubeRestricted bool
}

var agePresets = map[models.AgeGroup]agePreset{
	models.AgeGroupPreschool: {
		BlockedCategories: []string{"porn", "gambling", "dating", "piracy", "social-networks", "video-streaming", "gaming"},
		BlockedServices:   []string{"tiktok", "instagram", "snapchat", "discord", "twitch", "reddit"},
		SafeSearch:        true,
		YoutubeRestricted: true,
	},
	models.AgeGroupChild: {
		BlockedCategories: []string{"porn", "gambling", "dating", "piracy", "social-networks"},
		BlockedServices:   []string{"tiktok", "instagram", "snapchat", "discord"},
		SafeSearch:        true,
		YoutubeRestricted: true,
	},
	models.AgeGroupTeen: {
		BlockedCategories: []string{"porn", "gambling", "dating", "piracy"},
		BlockedServices:   []string{},
		SafeSearch:        true,
		YoutubeRestricted: false,
	},
	models.AgeGroupCustom: {
		BlockedCategories: []string{"porn"},
		BlockedServices:   []string{},
		SafeSearch:        false,
		YoutubeRestricted: false,
	},
}

// FilteringService — клиент REST API DNS-фильтрации (NextDNS)
type FilteringService struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewFilteringService() *FilteringService {
	baseURL := os.Getenv("FILTERING_API_URL")
	if baseURL == "" {
		baseURL = "https://api.nextdns.io"
	}
	return &FilteringService{
		BaseURL: baseURL,
		APIKey:  os.Getenv("FILTERING_API_KEY"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateConfiguration создает профиль фильтрации под возрастную группу
// и возвращает DNS-адреса для настройки устройства ребенка
func (s *FilteringService) CreateConfiguration(childName string, ageGroup models.AgeGroup) (models.FilterConfig, error) {
	preset, ok := agePresets[ageGroup]
	if !ok {
		preset = agePresets[models.AgeGroupCustom]
	}

	body := map[string]interface{}{
		"name": "SafeKids - " + childName,
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := s.do(http.MethodPost, "/profiles", body, &created); err != nil {
		return models.FilterConfig{}, err
	}
	configID := created.Data.ID
	if configID == "" {
		return models.FilterConfig{}, fmt.Errorf("filtering API returned empty profile id")
	}

	// Накатываем пресет; частичный сбой не откатывает профиль
	settings := map[string]interface{}{
		"parentalControl": map[string]interface{}{
			"categories":        categoriesPayload(preset.BlockedCategories),
			"services":          servicesPayload(preset.BlockedServices),
			"safeSearch":        preset.SafeSearch,
			"youtubeRestricted": preset.YoutubeRestricted,
			"blockBypass":       true,
		},
	}
	if err := s.do(http.MethodPatch, "/profiles/"+configID, settings, nil); err != nil {
		log.Printf("[Filtering] Не удалось применить пресет %s к профилю %s: %v", ageGroup, configID, err)
	}

	return models.FilterConfig{
		ID: configID,
		DNSServers: []string{
			configID + ".dns.nextdns.io",
			"https://dns.nextdns.io/" + configID,
		},
	}, nil
}

// DeleteConfiguration удаляет профиль фильтрации
func (s *FilteringService) DeleteConfiguration(configID string) error {
	return s.do(http.MethodDelete, "/profiles/"+configID, nil, nil)
}

// SyncLists приводит denylist/allowlist профиля в соответствие настройкам ребенка
func (s *FilteringService) SyncLists(configID string, settings models.ChildSettings) error {
	deny := make([]map[string]interface{}, 0, len(settings.BlockedWebsites))
	for _, domain := range settings.BlockedWebsites {
		deny = append(deny, map[string]interface{}{"id": domain, "active": true})
	}
	allow := make([]map[string]interface{}, 0, len(settings.AllowedWebsites))
	for _, domain := range settings.AllowedWebsites {
		allow = append(allow, map[string]interface{}{"id": domain, "active": true})
	}

	if err := s.do(http.MethodPut, "/profiles/"+configID+"/denylist", deny, nil); err != nil {
		return fmt.Errorf("failed to sync denylist: %w", err)
	}
	if err := s.do(http.MethodPut, "/profiles/"+configID+"/allowlist", allow, nil); err != nil {
		return fmt.Errorf("failed to sync allowlist: %w", err)
	}
	return nil
}

func (s *FilteringService) do(method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", s.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("filtering API: %s %s returned status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func categoriesPayload(ids []string) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]interface{}{"id": id, "active": true})
	}
	return items
}

func servicesPayload(ids []string) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]interface{}{"id": id, "active": true})
	}
	return items
}
