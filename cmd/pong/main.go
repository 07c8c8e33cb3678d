package main

import (
	"os"

	"chosenoffset.com/pong/internal/cli"
	"chosenoffset.com/pong/internal/render"
	ebitenrender "chosenoffset.com/pong/internal/render/ebiten"
)

// backends available in this build; backend_sdl.go adds "sdl" when built
// with -tags sdl.
var backends = cli.Backends{
	"ebiten": ebitenrender.NewEngine,
}

func main() {
	os.Exit(cli.Execute(backends, os.Args[1:]))
}

func registerBackend(name string, newEngine func() render.Engine) {
	backends[name] = newEngine
}
