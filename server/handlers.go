package server

import (
	"log"
	"net/http"

	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
)

func (g *GameServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "ok", nil)
}

// HandleNewGame deals a new game, reproducibly when a seed is given
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data protocol.NewGameReq
	if err := decodeBody(r, &data, true); err != nil {
		writeError(w, err)
		return
	}

	dealer := g.dealer
	if data.Seed != nil {
		dealer = game.NewSeededDealer(*data.Seed)
	}
	dealt := dealer.Deal(data.GameID)

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{Game: dealt, AutoFlip: g.autoFlip})
	if err != nil {
		writeError(w, err)
		return
	}

	if err := g.store.AddGame(ge); err != nil {
		ge.Close()
		writeError(w, err)
		return
	}

	log.Printf("dealt game %s", ge.ID())
	writeOK(w, http.StatusCreated, "new game dealt", ge.State())
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "", ge.State())
}

func (g *GameServer) HandleDraw(w http.ResponseWriter, r *http.Request) {
	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := ge.Draw()
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "card drawn", state)
}

func (g *GameServer) HandleMove(w http.ResponseWriter, r *http.Request) {
	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var data protocol.MoveReq
	if err := decodeBody(r, &data, false); err != nil {
		writeError(w, err)
		return
	}

	from, err := game.ParseLocation(data.From)
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := game.ParseLocation(data.To)
	if err != nil {
		writeError(w, err)
		return
	}
	cardIndex := game.TopCard
	if data.CardIndex != nil {
		cardIndex = *data.CardIndex
	}

	state, err := ge.Move(from, to, cardIndex)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "card moved"
	if state.GameWon {
		message = "game won"
	}
	writeOK(w, http.StatusOK, message, state)
}

func (g *GameServer) HandleFlip(w http.ResponseWriter, r *http.Request) {
	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var data protocol.FlipReq
	if err := decodeBody(r, &data, false); err != nil {
		writeError(w, err)
		return
	}

	state, err := ge.Flip(data.Column)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "card flipped", state)
}

// HandleListGames lists the ids of the games being played
func (g *GameServer) HandleListGames(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "", g.store.GameIDs())
}

// HandleRemoveGame ends an active game without touching its saves
func (g *GameServer) HandleRemoveGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	if err := g.store.RemoveGame(gameID); err != nil {
		writeError(w, err)
		return
	}

	log.Printf("removed game %s", gameID)
	writeOK(w, http.StatusOK, "game removed", nil)
}

func (g *GameServer) HandleSave(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	ge, err := g.findGame(r)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "game saved"
	if saves.Exists(ge.ID()) {
		message = "save updated"
	}

	if err := saves.Save(ge.Snapshot()); err != nil {
		writeError(w, err)
		return
	}

	saved, err := saves.Load(ge.ID())
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, message, protocol.GameSummary{
		GameID:     saved.GameID,
		MovesCount: saved.MovesCount,
		GameWon:    saved.GameWon,
		SavedAt:    saved.SavedAt,
	})
}

func (g *GameServer) HandleListSaved(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "", saves.List())
}

// HandleLoadSaved makes a saved game the active game under its id
func (g *GameServer) HandleLoadSaved(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := saves.Load(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	loaded, err := game.Deserialize(saved)
	if err != nil {
		writeError(w, err)
		return
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{Game: loaded, AutoFlip: g.autoFlip})
	if err != nil {
		writeError(w, err)
		return
	}
	g.store.ReplaceGame(ge)

	log.Printf("loaded saved game %s", ge.ID())
	writeOK(w, http.StatusOK, "game loaded", ge.State())
}

func (g *GameServer) HandleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := saves.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "game deleted", nil)
}

// HandleClearSaved deletes every saved game
func (g *GameServer) HandleClearSaved(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	if err := saves.Clear(); err != nil {
		writeError(w, err)
		return
	}

	log.Println("cleared saved games")
	writeOK(w, http.StatusOK, "saved games cleared", nil)
}

func (g *GameServer) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "", saves.Statistics())
}

func (g *GameServer) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	saves, err := g.saveStore()
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, http.StatusOK, "", saves.Metadata())
}
