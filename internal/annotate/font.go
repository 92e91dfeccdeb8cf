package annotate

import (
	"log/slog"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the label size in points (1pt = 1px at 72 DPI).
const DefaultFontSize = 12

var parseGoRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// labelFace returns a Go Regular face of the given size, or basicfont's
// 7x13 bitmap face when the TrueType font is unavailable.
func labelFace(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := parseGoRegular()
	if err != nil {
		slog.Warn("falling back to bitmap label font", "err", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
