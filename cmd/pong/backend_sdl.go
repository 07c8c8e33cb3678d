//go:build sdl

package main

import (
	"runtime"

	sdlrender "chosenoffset.com/pong/internal/render/sdl"
)

func init() {
	// SDL calls must all come from the main thread.
	runtime.LockOSThread()
	registerBackend("sdl", sdlrender.NewEngine)
}
