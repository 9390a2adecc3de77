package event

import (
	"sync"
	"testing"
	"time"
)

func TestBroadcastDeliversToTopic(t *testing.T) {
	s := NewSSEServer()
	go s.Run()

	client := make(chan Event, 8)
	s.Register(TopicOrders, client)
	defer s.Unregister(TopicOrders, client)

	other := make(chan Event, 1)
	s.Register("khac", other)
	defer s.Unregister("khac", other)

	s.Broadcast(Event{Topic: TopicOrders, Type: EventTypeOrderCreated, Data: "DH-ABCDEFGHJK"})

	select {
	case ev := <-client:
		if ev.Type != EventTypeOrderCreated {
			t.Fatalf("expected %s, got %s", EventTypeOrderCreated, ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("event was not delivered")
	}

	// Client ở topic khác không được nhận.
	select {
	case ev := <-other:
		t.Fatalf("unexpected event on other topic: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterDuringBroadcast(t *testing.T) {
	s := NewSSEServer()
	go s.Run()

	// Client ngắt kết nối giữa lúc Run đang phát sự kiện không được làm sập
	// luồng broadcast.
	for i := 0; i < 100; i++ {
		clients := make([]chan Event, 64)
		for j := range clients {
			clients[j] = make(chan Event, 1)
			s.Register(TopicOrders, clients[j])
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, client := range clients {
				s.Unregister(TopicOrders, client)
			}
		}()

		s.Broadcast(Event{Topic: TopicOrders, Type: EventTypeOrderCreated})
		wg.Wait()
	}

	client := make(chan Event, 1)
	s.Register(TopicOrders, client)
	defer s.Unregister(TopicOrders, client)

	s.Broadcast(Event{Topic: TopicOrders, Type: EventTypeOrderPaid})
	select {
	case <-client:
	case <-time.After(time.Second):
		t.Fatalf("broadcast loop stopped delivering after clients disconnected")
	}
}

func TestBroadcastSkipsFullClient(t *testing.T) {
	s := NewSSEServer()
	go s.Run()

	full := make(chan Event) // không có buffer, không ai đọc
	s.Register(TopicOrders, full)
	defer s.Unregister(TopicOrders, full)

	healthy := make(chan Event, 1)
	s.Register(TopicOrders, healthy)
	defer s.Unregister(TopicOrders, healthy)

	s.Broadcast(Event{Topic: TopicOrders, Type: EventTypeLowStock})

	// Client nghẽn không được chặn client còn lại.
	select {
	case <-healthy:
	case <-time.After(time.Second):
		t.Fatalf("healthy client did not receive the event")
	}
}
