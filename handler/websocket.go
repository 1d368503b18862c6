package handler

import (
	"context"
	"os"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const checkinChannel = "checkin"

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	checkinClients = make(map[*websocket.Conn]bool)
	mu             sync.Mutex
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// CheckinWebsocket alimenta as telas do portão com os resgates ao vivo.
func CheckinWebsocket(c *websocket.Conn) {
	defer func() {
		mu.Lock()
		delete(checkinClients, c)
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	checkinClients[c] = true
	mu.Unlock()

	pubsub := redisClient.Subscribe(context.Background(), checkinChannel)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range checkinClients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(checkinClients, conn)
			}
		}
		mu.Unlock()
	}
}
