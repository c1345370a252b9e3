package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	utils "github.com/minaorangina/klondike/internal"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T, gameID string) engine.GameEngine {
	t.Helper()

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{
		Game: game.NewSeededDealer(1).Deal(gameID),
	})
	utils.AssertNoError(t, err)
	t.Cleanup(ge.Close)

	return ge
}

func TestInMemoryGameStore(t *testing.T) {
	t.Run("Constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemoryGameStore()
		if str.Games == nil {
			t.Error("Games was nil")
		}
	})

	t.Run("prevents duplicate game IDs", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newTestEngine(t, "thisISAnID")

		err := str.AddGame(ge)
		utils.AssertNoError(t, err)

		err = str.AddGame(ge)
		utils.AssertErrorIs(t, err, ErrGameExists)
	})

	t.Run("Can retrieve an existing game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := newTestEngine(t, "test-game-id")
		utils.AssertNoError(t, str.AddGame(ge))

		game := str.FindGame("test-game-id")
		utils.AssertNotNil(t, game)
		utils.AssertEqual(t, game.ID(), "test-game-id")
	})

	t.Run("Handles a non-existent game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		game := str.FindGame("fake-id")

		utils.AssertEqual(t, game, nil)
	})

	t.Run("ReplaceGame swaps the engine and closes the old one", func(t *testing.T) {
		str := NewInMemoryGameStore()
		old := newTestEngine(t, "replace-me")
		utils.AssertNoError(t, str.AddGame(old))
		watcher := old.AddWatcher("w")
		<-watcher

		replacement := newTestEngine(t, "replace-me")
		str.ReplaceGame(replacement)

		utils.AssertEqual(t, str.FindGame("replace-me"), replacement)
		utils.Within(t, gameStoreTestTimeout, func() {
			for range watcher {
			}
		})
	})

	t.Run("RemoveGame forgets the game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		utils.AssertNoError(t, str.AddGame(newTestEngine(t, "doomed")))

		utils.AssertNoError(t, str.RemoveGame("doomed"))
		utils.AssertEqual(t, str.FindGame("doomed"), nil)

		err := str.RemoveGame("doomed")
		utils.AssertErrorIs(t, err, ErrUnknownGameID)
	})

	t.Run("lists game ids in order", func(t *testing.T) {
		str := NewInMemoryGameStore()
		for _, id := range []string{"c", "a", "b"} {
			utils.AssertNoError(t, str.AddGame(newTestEngine(t, id)))
		}

		assert.Equal(t, []string{"a", "b", "c"}, str.GameIDs())
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		str := NewInMemoryGameStore()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("game-%d", i)
				assert.NoError(t, str.AddGame(newTestEngine(t, id)))
				assert.NotNil(t, str.FindGame(id))
			}(i)
		}
		wg.Wait()

		utils.AssertEqual(t, len(str.GameIDs()), 20)
	})
}
