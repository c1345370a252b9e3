package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
	"github.com/minaorangina/klondike/store"
)

var (
	errBadRequest     = errors.New("bad request")
	errSavingDisabled = errors.New("saving is not configured")
)

func (g *GameServer) saveStore() (store.SaveStore, error) {
	if g.saves == nil {
		return nil, errSavingDisabled
	}
	return g.saves, nil
}

func (g *GameServer) findGame(r *http.Request) (engine.GameEngine, error) {
	gameID := r.PathValue("id")
	if gameID == "" {
		gameID = r.URL.Query().Get("game_id")
	}
	if gameID == "" {
		return nil, fmt.Errorf("%w: missing game ID", errBadRequest)
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		return nil, fmt.Errorf("%w '%s'", store.ErrUnknownGameID, gameID)
	}
	return ge, nil
}

// decodeBody reads a JSON body into v. An empty body is an error unless optional is set.
func decodeBody(r *http.Request, v interface{}, optional bool) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: missing body", errBadRequest)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func errorStatus(err error) (int, protocol.ErrCode) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, protocol.BadRequest
	case errors.Is(err, game.ErrInvalidLocation):
		return http.StatusBadRequest, protocol.InvalidLocation
	case errors.Is(err, store.ErrUnknownGameID):
		return http.StatusNotFound, protocol.UnknownGame
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusUnprocessableEntity, protocol.IllegalMove
	case errors.Is(err, game.ErrEmptySource):
		return http.StatusUnprocessableEntity, protocol.EmptySource
	case errors.Is(err, engine.ErrGameOver):
		return http.StatusConflict, protocol.GameOver
	case errors.Is(err, store.ErrGameExists):
		return http.StatusConflict, protocol.GameExists
	case errors.Is(err, errSavingDisabled):
		return http.StatusServiceUnavailable, protocol.SavingDisabled
	default:
		return http.StatusInternalServerError, protocol.Internal
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Println(err.Error())
		message = "something went wrong"
	}

	writeJSON(w, status, protocol.Response{
		Success: false,
		Message: message,
		Error:   &protocol.ErrorInfo{Code: code, Reason: game.ReasonOf(err).String()},
	})
}

func writeOK(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, protocol.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload protocol.Response) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
