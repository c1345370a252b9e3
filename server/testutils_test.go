package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/minaorangina/klondike/game"
	utils "github.com/minaorangina/klondike/internal"
	"github.com/minaorangina/klondike/protocol"
	"github.com/minaorangina/klondike/store"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Error   *protocol.ErrorInfo `json:"error"`
}

func newTestServer(t *testing.T) *GameServer {
	t.Helper()

	saves, err := store.NewFileStore(filepath.Join(t.TempDir(), "games.json"))
	require.NoError(t, err)

	return NewServer(ServerOpts{
		Store:  store.NewInMemoryGameStore(),
		Saves:  saves,
		Dealer: game.NewSeededDealer(2024),
	})
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newRequest(method, path string, data []byte) *http.Request {
	request, _ := http.NewRequest(method, path, bytes.NewBuffer(data))
	return request
}

func newCreateGameRequest(data []byte) *http.Request {
	return newRequest(http.MethodPost, "/new", data)
}

func newMoveRequest(t *testing.T, gameID, from, to string, index *int) *http.Request {
	return newRequest(http.MethodPost, "/game/"+gameID+"/move", mustMakeJson(t, protocol.MoveReq{From: from, To: to, CardIndex: index}))
}

func serve(s *GameServer, request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	s.ServeHTTP(response, request)
	return response
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct status, got %d, want %d", got, want)
	}
}

func decodeEnvelope(t *testing.T, response *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	err := json.Unmarshal(response.Body.Bytes(), &env)
	require.NoError(t, err, response.Body.String())
	return env
}

func decodeState(t *testing.T, response *httptest.ResponseRecorder) protocol.GameState {
	t.Helper()

	env := decodeEnvelope(t, response)
	require.True(t, env.Success, response.Body.String())

	var state protocol.GameState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	return state
}

func assertErrorCode(t *testing.T, response *httptest.ResponseRecorder, status int, code protocol.ErrCode) envelope {
	t.Helper()

	assertStatus(t, response.Code, status)
	env := decodeEnvelope(t, response)
	utils.AssertEqual(t, env.Success, false)
	require.NotNil(t, env.Error)
	utils.AssertEqual(t, env.Error.Code, code)
	return env
}

// createGame deals a seeded game with the given id
func createGame(t *testing.T, s *GameServer, gameID string) protocol.GameState {
	t.Helper()

	seed := int64(7)
	response := serve(s, newCreateGameRequest(mustMakeJson(t, protocol.NewGameReq{GameID: gameID, Seed: &seed})))
	assertStatus(t, response.Code, http.StatusCreated)
	return decodeState(t, response)
}
