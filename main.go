package main

import (
	"flag"
	"log"

	"github.com/decker502/minigames/pkg/app"
	"github.com/decker502/minigames/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	scene := flag.String("scene", "", "start scene: menu, runner or match3 (default menu)")
	flag.Parse()

	game, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Scene:   *scene,
	})
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Mini Games")

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
