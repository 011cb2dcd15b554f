package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"ticketflix/config"
	"ticketflix/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const saleFeedChannel = "sales:feed"

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	feedClients = make(map[*websocket.Conn]bool)
	feedMu      sync.Mutex
)

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

// SaleFeedConnection streams sale events to a connected operator UI.
func SaleFeedConnection(c *websocket.Conn) {
	defer func() {
		feedMu.Lock()
		delete(feedClients, c)
		feedMu.Unlock()
		c.Close()
	}()

	feedMu.Lock()
	feedClients[c] = true
	feedMu.Unlock()

	pubsub := getRedis().Subscribe(context.Background(), saleFeedChannel)
	defer pubsub.Close()

	channel := pubsub.Channel()
	for msg := range channel {
		var event model.SaleEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			continue
		}
		if err := c.WriteJSON(event); err != nil {
			return
		}
	}
}

// PublishSaleEvent fans a committed sale out to every feed subscriber.
// Fire-and-forget: feed delivery must never affect the sale itself.
func PublishSaleEvent(event model.SaleEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := getRedis().Publish(context.Background(), saleFeedChannel, payload).Err(); err != nil {
		log.Printf("failed to publish sale event: %v", err)
	}
}
