//go:build tinygo

package main

import (
	"gfxport/app"
	"gfxport/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
