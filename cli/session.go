package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/protocol"
	"github.com/minaorangina/klondike/store"
	"github.com/pterm/pterm"
)

const (
	welcomeText = "Klondike. Type \"help\" for the list of commands.\n"
	promptText  = "> "
	goodbyeText = "Bye!\n"
	helpText    = `Commands:
  draw, d                        turn over the next stock card (or recycle the waste)
  move, m <from> <to> [index]    move a card, or a run starting at index, between piles
  flip, f <column>               turn up the top card of a column
  show                           redraw the board
  save                           save the game
  help, h                        show this list
  quit, q                        leave

Piles: s (stock), w (waste), t0-t6 (tableau), fc fd fh fs (foundations),
or the full names such as tableau_3 and foundation_hearts.
`
)

type SessionOpts struct {
	Engine engine.GameEngine
	// Saves is optional; without it the save command is unavailable
	Saves  store.SaveStore
	In     io.Reader
	Out    io.Writer
	Logger *slog.Logger
}

// Session plays one game in the terminal
type Session struct {
	engine engine.GameEngine
	saves  store.SaveStore
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

func NewSession(opts SessionOpts) (*Session, error) {
	if opts.Engine == nil {
		return nil, engine.ErrMissingGame
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	}

	return &Session{
		engine: opts.Engine,
		saves:  opts.Saves,
		in:     opts.In,
		out:    opts.Out,
		logger: logger.With("game_id", opts.Engine.ID()),
	}, nil
}

// Run reads commands until the player quits, wins or input ends
func (s *Session) Run() error {
	SendText(s.out, welcomeText)
	s.write(RenderState(s.engine.State()))

	scanner := bufio.NewScanner(s.in)
	for {
		SendText(s.out, promptText)
		if !scanner.Scan() {
			s.write("\n" + goodbyeText)
			return scanner.Err()
		}

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			s.write(pterm.Error.Sprintln(err.Error()))
			continue
		}

		if cmd.Kind == Quit {
			SendText(s.out, goodbyeText)
			return nil
		}

		state, err := s.execute(cmd)
		if err != nil {
			s.report(err)
			continue
		}

		s.write(RenderState(state))
		if state.GameWon {
			s.logger.Info("game won", "moves", state.MovesCount)
			s.write(pterm.Success.Sprintfln("You won in %d moves!", state.MovesCount))
			return nil
		}
	}
}

func (s *Session) execute(cmd Command) (protocol.GameState, error) {
	switch cmd.Kind {
	case Draw:
		s.logger.Debug("draw")
		return s.engine.Draw()

	case Move:
		s.logger.Debug("move", "from", cmd.From.String(), "to", cmd.To.String(), "index", cmd.Index)
		return s.engine.Move(cmd.From, cmd.To, cmd.Index)

	case Flip:
		s.logger.Debug("flip", "column", cmd.Column)
		return s.engine.Flip(cmd.Column)

	case Save:
		if s.saves == nil {
			return protocol.GameState{}, errSavingDisabled
		}
		if err := s.saves.Save(s.engine.Snapshot()); err != nil {
			return protocol.GameState{}, err
		}
		s.logger.Info("game saved")
		s.write(pterm.Success.Sprintln("Game saved."))
		return s.engine.State(), nil

	case Help:
		SendText(s.out, helpText)
		return s.engine.State(), nil

	default:
		return s.engine.State(), nil
	}
}

var errSavingDisabled = errors.New("saving is not configured")

func (s *Session) report(err error) {
	switch {
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrEmptySource),
		errors.Is(err, game.ErrInvalidLocation),
		errors.Is(err, engine.ErrGameOver):
		s.write(pterm.Warning.Sprintln(err.Error()))
	default:
		s.logger.Error("command failed", "error", err)
		s.write(pterm.Error.Sprintln(err.Error()))
	}
}

func (s *Session) write(text string) {
	io.WriteString(s.out, text)
}

// SendText writes formatted text to w
func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}
