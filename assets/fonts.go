// Package assets loads the fonts the game draws with.
package assets

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	sourceOnce sync.Once
	source     *text.GoTextFaceSource
	sourceErr  error
)

// DialogFace returns the Go Regular face at size points.
func DialogFace(size float64) (text.Face, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if sourceErr != nil {
		return nil, fmt.Errorf("assets: load goregular: %w", sourceErr)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}
