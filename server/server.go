package server

import (
	"io"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/store"
)

type ServerOpts struct {
	Store store.GameStore
	// Saves is optional; without it the saved game routes answer 503
	Saves  store.SaveStore
	Dealer *game.Dealer
	// AllowedOrigins limits CORS and websocket origins. Empty allows any origin.
	AllowedOrigins []string
	AutoFlip       bool
	// LogRequests writes an access log line per request to LogOutput (stdout by default)
	LogRequests bool
	LogOutput   io.Writer
}

// GameServer is a game server
type GameServer struct {
	store          store.GameStore
	saves          store.SaveStore
	dealer         *game.Dealer
	autoFlip       bool
	allowedOrigins []string
	upgrader       websocket.Upgrader
	http.Server
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		store:          opts.Store,
		saves:          opts.Saves,
		dealer:         opts.Dealer,
		autoFlip:       opts.AutoFlip,
		allowedOrigins: opts.AllowedOrigins,
	}
	if s.store == nil {
		s.store = store.NewInMemoryGameStore()
	}
	if s.dealer == nil {
		s.dealer = game.NewDealer(nil)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /health", s.HandleHealth)
	router.HandleFunc("POST /new", s.HandleNewGame)
	router.HandleFunc("GET /games", s.HandleListGames)
	router.HandleFunc("GET /game/{id}", s.HandleFindGame)
	router.HandleFunc("DELETE /game/{id}", s.HandleRemoveGame)
	router.HandleFunc("POST /game/{id}/draw", s.HandleDraw)
	router.HandleFunc("POST /game/{id}/move", s.HandleMove)
	router.HandleFunc("POST /game/{id}/flip", s.HandleFlip)
	router.HandleFunc("POST /game/{id}/save", s.HandleSave)
	router.HandleFunc("GET /saved", s.HandleListSaved)
	router.HandleFunc("DELETE /saved", s.HandleClearSaved)
	router.HandleFunc("POST /saved/{id}/load", s.HandleLoadSaved)
	router.HandleFunc("DELETE /saved/{id}", s.HandleDeleteSaved)
	router.HandleFunc("GET /statistics", s.HandleStatistics)
	router.HandleFunc("GET /metadata", s.HandleMetadata)
	router.HandleFunc("GET /ws", s.HandleWS)

	var handler http.Handler = router
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	if opts.LogRequests {
		out := opts.LogOutput
		if out == nil {
			out = os.Stdout
		}
		handler = handlers.LoggingHandler(out, handler)
	}

	s.Handler = handler

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(g.allowedOrigins) == 0 {
		return true
	}

	for _, allowed := range g.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
