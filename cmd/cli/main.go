package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/minaorangina/klondike/cli"
	"github.com/minaorangina/klondike/config"
	"github.com/minaorangina/klondike/engine"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/store"
	"github.com/pterm/pterm"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $"+config.PathVar+")")
	seed := flag.Int64("seed", 0, "deal a reproducible game from this seed")
	load := flag.String("load", "", "resume the saved game with this id")
	debug := flag.Bool("debug", false, "log every command")
	var archive cli.ArchiveOpts
	flag.StringVar(&archive.Export, "export", "", "write the saved game with this id to the -to file, then exit")
	flag.StringVar(&archive.To, "to", "", "target file for -export")
	flag.StringVar(&archive.Import, "import", "", "save the game in this exported file, then exit")
	flag.StringVar(&archive.As, "as", "", "id for the game read by -import")
	flag.StringVar(&archive.Backup, "backup", "", "copy every saved game to this file, then exit")
	flag.Parse()

	if *debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	saves, err := store.NewFileStore(cfg.StorePath)
	if err != nil {
		logger.Error("could not open saved games", "error", err)
		os.Exit(1)
	}

	ran, err := cli.RunArchive(saves, archive, os.Stdout)
	if err != nil {
		logger.Error("archive task failed", "error", err)
		os.Exit(1)
	}
	if ran {
		return
	}

	var g *game.Game
	switch {
	case *load != "":
		data, err := saves.Load(*load)
		if err == nil {
			g, err = game.Deserialize(data)
		}
		if err != nil {
			logger.Error("could not load game", "game_id", *load, "error", err)
			os.Exit(1)
		}
	case *seed != 0:
		g = game.NewSeededDealer(*seed).Deal("")
	default:
		g = game.NewDealer(nil).Deal("")
	}

	ge, err := engine.NewGameEngine(engine.GameEngineOpts{Game: g, AutoFlip: cfg.AutoFlip})
	if err != nil {
		logger.Error("could not start game", "error", err)
		os.Exit(1)
	}
	defer ge.Close()

	session, err := cli.NewSession(cli.SessionOpts{
		Engine: ge,
		Saves:  saves,
		In:     os.Stdin,
		Out:    os.Stdout,
		Logger: logger,
	})
	if err != nil {
		logger.Error("could not start session", "error", err)
		os.Exit(1)
	}

	if err := session.Run(); err != nil {
		logger.Error("session ended", "error", err)
	}
}
