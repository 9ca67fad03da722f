package services

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// Notifier broadcasts social events: likes, mutual matches, challenge
// invitations. Emission is fire-and-forget; a lost event never fails the
// operation that produced it.
type Notifier interface {
	Emit(event string, payload interface{})
}

// SocketRoom is the room every connected client joins for social events.
const SocketRoom = "social"

// SocketNotifier emits events over the socket.io server.
type SocketNotifier struct {
	Server *socketio.Server
}

func (n *SocketNotifier) Emit(event string, payload interface{}) {
	if n.Server == nil {
		return
	}
	if ok := n.Server.BroadcastToRoom("/", SocketRoom, event, payload); !ok {
		log.Printf("No listeners for %s event", event)
	}
}
