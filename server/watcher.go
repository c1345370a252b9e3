package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// wsWatcher streams game states to a websocket client
type wsWatcher struct {
	id      string
	conn    *websocket.Conn
	ge      engine.GameEngine
	updates <-chan protocol.GameState
}

// HandleWS streams the state of game_id, starting with the current state
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		log.Println(err)
		return
	}

	id := game.NewID()
	watcher := &wsWatcher{
		id:      id,
		conn:    conn,
		ge:      ge,
		updates: ge.AddWatcher(id),
	}

	go watcher.writePump()
	go watcher.readPump()
}

// readPump discards client messages and unregisters the watcher once the client goes away
func (w *wsWatcher) readPump() {
	defer w.ge.RemoveWatcher(w.id)

	w.conn.SetReadLimit(maxMessageSize)
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := w.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("watcher %s: %v", w.id, err)
			}
			return
		}
	}
}

func (w *wsWatcher) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		w.conn.Close()
	}()

	for {
		select {
		case state, ok := <-w.updates:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The engine closed the channel.
				w.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := w.conn.WriteJSON(state); err != nil {
				return
			}

		case <-ticker.C:
			w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
