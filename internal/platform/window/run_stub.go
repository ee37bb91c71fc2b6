//go:build !ebiten

package window

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/loop"
)

// Run always fails in the headless build.
func Run(*loop.Loop, config.Config) error {
	return ErrUnsupported
}
