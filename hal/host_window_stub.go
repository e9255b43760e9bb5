//go:build !tinygo && !cgo

package hal

import "fmt"

// RunWindow needs ebiten, which needs cgo. Use RunHeadless instead.
func RunWindow(_ func(HAL) (step func() error, close func())) error {
	return fmt.Errorf("window mode: %w without cgo (build with CGO_ENABLED=1 or pass -headless)", ErrNotImplemented)
}
