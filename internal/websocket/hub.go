// Package websocket доставляет уведомления подключенным клиентам
// в реальном времени. Подключения группируются по пользователю:
// одно уведомление уходит на все открытые вкладки получателя.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	// Зарегистрированные клиенты по пользователям
	clients map[primitive.ObjectID]map[*Client]bool

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для отмены регистрации клиентов
	unregister chan *Client

	// Исходящие уведомления
	notify chan *UserMessage

	done chan struct{}

	mutex sync.RWMutex
}

type UserMessage struct {
	UserID  primitive.ObjectID
	Payload interface{}
}

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		notify:     make(chan *UserMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку, запускается
// одной горутиной из main.
func (hub *Hub) Run() {
	for {
		select {
		case client := <-hub.register:
			hub.mutex.Lock()
			if hub.clients[client.userID] == nil {
				hub.clients[client.userID] = make(map[*Client]bool)
			}
			hub.clients[client.userID][client] = true
			hub.mutex.Unlock()
			log.Printf("WebSocket: клиент пользователя %s подключен", client.userID.Hex())

		case client := <-hub.unregister:
			hub.mutex.Lock()
			if clients, ok := hub.clients[client.userID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(hub.clients, client.userID)
					}
				}
			}
			hub.mutex.Unlock()
			log.Printf("WebSocket: клиент пользователя %s отключен", client.userID.Hex())

		case message := <-hub.notify:
			hub.mutex.RLock()
			clients := hub.clients[message.UserID]
			hub.mutex.RUnlock()

			messageBytes, err := json.Marshal(WSMessage{
				Type: "notification",
				Data: message.Payload,
			})
			if err != nil {
				log.Printf("WebSocket: ошибка сериализации уведомления: %v", err)
				continue
			}

			for client := range clients {
				select {
				case client.send <- messageBytes:
				default:
					hub.mutex.Lock()
					close(client.send)
					delete(clients, client)
					if len(clients) == 0 {
						delete(hub.clients, message.UserID)
					}
					hub.mutex.Unlock()
				}
			}

		case <-hub.done:
			return
		}
	}
}

// NotifyUser отправляет payload всем подключениям пользователя.
// Неблокирующая: если подключений нет, уведомление просто не уходит —
// оно уже сохранено в инбоксе пользователя.
func (hub *Hub) NotifyUser(userID primitive.ObjectID, payload interface{}) {
	select {
	case hub.notify <- &UserMessage{UserID: userID, Payload: payload}:
	default:
		log.Printf("WebSocket: очередь рассылки переполнена, уведомление для %s не доставлено", userID.Hex())
	}
}

// ConnectionsCount возвращает число активных подключений.
func (hub *Hub) ConnectionsCount() int {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()

	count := 0
	for _, clients := range hub.clients {
		count += len(clients)
	}
	return count
}

// Shutdown останавливает цикл рассылки.
func (hub *Hub) Shutdown() {
	close(hub.done)
}
