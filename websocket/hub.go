package websocket

import (
	"log"
	"time"

	"github.com/goccy/go-json"

	"SafeKidsMobile/models"
)

// Event — событие изменения профилей, рассылаемое клиентам родителя
type Event struct {
	Type      string               `json:"type"`
	Profile   *models.ChildProfile `json:"profile,omitempty"`
	ProfileID string               `json:"profile_id,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// Hub держит активные WebSocket-соединения, сгруппированные по родителю.
// Один родитель может быть подключен с нескольких устройств одновременно.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan targetedEvent
}

type targetedEvent struct {
	parentID string
	payload  []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan targetedEvent, 64),
	}
}

// Run обрабатывает подключения и рассылку событий. Запускается в отдельной горутине.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.parentID] == nil {
				h.clients[client.parentID] = make(map[*Client]bool)
			}
			h.clients[client.parentID][client] = true
			log.Printf("[WebSocket] Клиент родителя %s подключен, всего соединений: %d", client.parentID, len(h.clients[client.parentID]))

		case client := <-h.unregister:
			if conns, ok := h.clients[client.parentID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.parentID)
					}
					log.Printf("[WebSocket] Клиент родителя %s отключен", client.parentID)
				}
			}

		case event := <-h.events:
			for client := range h.clients[event.parentID] {
				select {
				case client.send <- event.payload:
				default:
					// Клиент не успевает читать, отключаем его
					delete(h.clients[event.parentID], client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastProfileEvent отправляет событие всем устройствам родителя
func (h *Hub) BroadcastProfileEvent(parentID, eventType string, profile *models.ChildProfile, profileID string) {
	event := Event{
		Type:      eventType,
		Profile:   profile,
		ProfileID: profileID,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WebSocket] Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	select {
	case h.events <- targetedEvent{parentID: parentID, payload: payload}:
	default:
		log.Printf("[WebSocket] Очередь событий переполнена, событие %s отброшено", eventType)
	}
}
