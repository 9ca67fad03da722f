package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewServer builds the socket.io server that pushes social events (likes,
// mutual matches, challenge invitations) to connected clients. Clients join
// the shared room right after connecting.
func NewServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Printf("Socket connected: %s", s.ID())
		return nil
	})

	server.OnEvent("/", "join", func(s socketio.Conn, room string) {
		if room == "" {
			room = "social"
		}
		s.Join(room)
		log.Printf("Socket %s joined room %s", s.ID(), room)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Printf("Socket error: %v", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Printf("Socket disconnected: %s (%s)", s.ID(), reason)
	})

	return server
}
