package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 1),
		userID: primitive.NewObjectID(),
	}
}

func TestHub_NotifyUserDeliversToClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub)
	hub.register <- client

	hub.NotifyUser(client.userID, map[string]string{"message": "hello"})

	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), `"type":"notification"`)
		assert.Contains(t, string(msg), "hello")
	case <-time.After(time.Second):
		t.Fatal("уведомление не дошло до клиента")
	}
}

func TestHub_NotifyOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient(hub)
	hub.register <- client

	// Уведомление чужому пользователю не попадает в это соединение
	hub.NotifyUser(primitive.NewObjectID(), map[string]string{"message": "secret"})

	select {
	case msg := <-client.send:
		t.Fatalf("клиент получил чужое уведомление: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_ConnectionsCount(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	first := newTestClient(hub)
	second := newTestClient(hub)
	hub.register <- first
	hub.register <- second

	// Регистрация обрабатывается горутиной хаба асинхронно
	assert.Eventually(t, func() bool {
		return hub.ConnectionsCount() == 2
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- first
	assert.Eventually(t, func() bool {
		return hub.ConnectionsCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHub_DetachAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub)
	hub.register <- client

	hub.Shutdown()

	// После остановки цикла рассылки снятие регистрации не зависает
	detached := make(chan struct{})
	go func() {
		client.detach()
		close(detached)
	}()

	select {
	case <-detached:
	case <-time.After(time.Second):
		t.Fatal("detach завис после остановки хаба")
	}
}
