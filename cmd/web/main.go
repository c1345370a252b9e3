package main

import (
	"flag"
	"log"

	"github.com/minaorangina/klondike/config"
	"github.com/minaorangina/klondike/game"
	"github.com/minaorangina/klondike/server"
	"github.com/minaorangina/klondike/store"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $"+config.PathVar+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	saves, err := store.NewFileStore(cfg.StorePath)
	if err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(server.ServerOpts{
		Store:          store.NewInMemoryGameStore(),
		Saves:          saves,
		Dealer:         game.NewDealer(nil),
		AllowedOrigins: cfg.AllowedOrigins,
		AutoFlip:       cfg.AutoFlip,
		LogRequests:    cfg.LogRequests,
	})
	s.Addr = cfg.Addr()

	log.Printf("Listening on port %d...", cfg.Port)
	log.Fatal(s.ListenAndServe())
}
