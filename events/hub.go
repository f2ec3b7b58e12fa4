package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/recati/comanda-app/models"
)

// Event types pushed to connected till and kitchen displays.
const (
	EventOrderUpdate   = "order_update"
	EventOrderDelete   = "order_delete"
	EventPaymentUpdate = "payment_update"
	EventStockUpdate   = "stock_update"
	EventCodeUpdate    = "code_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected websocket client and fans broadcasts out to all
// of them. Each client writes from its own goroutine fed by a buffered
// queue, so a stalled display never holds up the request that triggered
// the broadcast. A client that fails a write or falls behind is dropped.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

const sendQueueSize = 16

var hub = Hub{clients: make(map[*websocket.Conn]*client)}

func RegisterClient(conn *websocket.Conn) {
	cl := &client{conn: conn, send: make(chan []byte, sendQueueSize)}
	hub.mutex.Lock()
	hub.clients[conn] = cl
	hub.mutex.Unlock()
	go cl.writeLoop()
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	if cl, ok := hub.clients[conn]; ok {
		delete(hub.clients, conn)
		close(cl.send)
	}
	hub.mutex.Unlock()
	conn.Close()
}

func (cl *client) writeLoop() {
	for data := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			UnregisterClient(cl.conn)
			return
		}
	}
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastOrderDelete(orderID uint) {
	broadcast(Message{Event: EventOrderDelete, Data: map[string]uint{"order_id": orderID}})
}

func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{Event: EventPaymentUpdate, Data: payment})
}

func BroadcastStockUpdate(product models.Product) {
	broadcast(Message{Event: EventStockUpdate, Data: product})
}

func BroadcastCodeUpdate(code models.CodeView) {
	broadcast(Message{Event: EventCodeUpdate, Data: code})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for conn, cl := range hub.clients {
		select {
		case cl.send <- data:
		default:
			// Queue full means the client stopped draining.
			delete(hub.clients, conn)
			close(cl.send)
			conn.Close()
		}
	}
}
