package event

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type SSEServer struct {
	clients map[string]map[chan Event]bool
	events  chan Event
	mu      sync.Mutex
}

func NewSSEServer() EventSender {
	return &SSEServer{
		clients: make(map[string]map[chan Event]bool),
		events:  make(chan Event, 64),
	}
}

// Register đăng ký client vào topic.
func (s *SSEServer) Register(topic string, client chan Event) {
	s.mu.Lock()
	if _, ok := s.clients[topic]; !ok {
		s.clients[topic] = make(map[chan Event]bool)
	}
	s.clients[topic][client] = true
	total := len(s.clients[topic])
	s.mu.Unlock()
	log.Info().Msgf("New client registered to topic %s. Total clients: %d", topic, total)
}

// Unregister hủy đăng ký client khỏi topic. Channel không bao giờ được đóng
// ở đây: Run có thể đang gửi vào một bản chụp danh sách client cũ, đóng lúc
// đó sẽ panic. Handler thoát qua ctx.Done() nên channel bỏ lại cũng không sao.
func (s *SSEServer) Unregister(topic string, client chan Event) {
	s.mu.Lock()
	if clients, ok := s.clients[topic]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(s.clients, topic)
		}
	}
	remaining := len(s.clients[topic])
	s.mu.Unlock()
	log.Info().Msgf("Client unregistered from topic %s. Remaining clients: %d", topic, remaining)
}

// Broadcast gửi sự kiện tới tất cả client của topic
func (s *SSEServer) Broadcast(event Event) {
	s.events <- event
}

// Run xử lý luồng sự kiện
func (s *SSEServer) Run() {
	for event := range s.events {
		s.mu.Lock()
		clients := make([]chan Event, 0, len(s.clients[event.Topic]))
		for client := range s.clients[event.Topic] {
			clients = append(clients, client)
		}
		s.mu.Unlock()

		for _, client := range clients {
			// Client chậm thì bỏ qua sự kiện, không để nghẽn cả luồng broadcast.
			select {
			case client <- event:
			default:
				log.Warn().Str("topic", event.Topic).Msg("client channel full, event dropped")
			}
		}
	}
}
