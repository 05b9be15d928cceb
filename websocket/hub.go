package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)

// Broadcast receives payments whose status just changed. The hub delivers
// them to the boarder owning the tenant record and to every connected
// landlord.
var Broadcast = make(chan *models.Payment)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case payment := <-Broadcast:
			var recipients []models.User
			err := database.DB.
				Where("role = ? OR tenant_id = ?", models.RoleLandlord, payment.TenantID).
				Find(&recipients).Error
			if err != nil {
				log.Printf("Error finding payment update recipients: %v", err)
				continue
			}

			clientsMu.RLock()
			for _, user := range recipients {
				conn, ok := clients[user.ID]
				if !ok {
					continue
				}
				if err := conn.WriteJSON(map[string]interface{}{
					"type":    "payment.updated",
					"payment": payment,
				}); err != nil {
					log.Printf("Error pushing payment update to %s: %v", user.ID, err)
				}
			}
			clientsMu.RUnlock()
		}
	}
}

// NotifyPaymentUpdate hands a payment to the hub without blocking the caller.
func NotifyPaymentUpdate(payment *models.Payment) {
	go func() {
		Broadcast <- payment
	}()
}
