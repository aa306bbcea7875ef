package imagery

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidFade       = errors.New("invalid fade parameters")
)

// Fade describes where a vertical fade begins and ends, as fractions of the
// image height (0.0 = top, 1.0 = bottom).
type Fade struct {
	Start float64
	End   float64
}

func (f Fade) Validate() error {
	if math.IsNaN(f.Start) || math.IsNaN(f.End) ||
		f.Start < 0 || f.Start > 1 || f.End < 0 || f.End > 1 {
		return fmt.Errorf("%w: start=%g end=%g must lie within [0, 1]", ErrInvalidFade, f.Start, f.End)
	}
	if f.Start > f.End {
		return fmt.Errorf("%w: start=%g is after end=%g", ErrInvalidFade, f.Start, f.End)
	}
	return nil
}

// Opacity returns the opacity at normalized vertical position pos.
// When Start == End the fade is a step: opaque above Start, transparent from
// Start downwards.
func (f Fade) Opacity(pos float64) float64 {
	switch {
	case pos < f.Start:
		return 1.0
	case pos > f.End:
		return 0.0
	case f.End == f.Start:
		return 0.0
	default:
		return 1.0 - (pos-f.Start)/(f.End-f.Start)
	}
}

// FadeMask is an opacity field that only varies vertically, so a single
// value is kept per row.
type FadeMask struct {
	width  int
	height int
	rows   []float64
}

func GenerateFadeMask(width, height int, fadeStart, fadeEnd float64) (*FadeMask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: fade mask of %dx%d", ErrInvalidDimensions, width, height)
	}
	fade := Fade{Start: fadeStart, End: fadeEnd}
	if err := fade.Validate(); err != nil {
		return nil, err
	}

	rows := make([]float64, height)
	for y := 0; y < height; y++ {
		rows[y] = fade.Opacity(float64(y) / float64(height))
	}

	return &FadeMask{width: width, height: height, rows: rows}, nil
}

func (m *FadeMask) Width() int  { return m.width }
func (m *FadeMask) Height() int { return m.height }

// Row returns the opacity shared by every pixel of row y.
func (m *FadeMask) Row(y int) float64 {
	if y < 0 || y >= m.height {
		return 0
	}
	return m.rows[y]
}

func (m *FadeMask) At(x, y int) float64 {
	if x < 0 || x >= m.width {
		return 0
	}
	return m.Row(y)
}

// Image renders the mask as 8-bit greyscale, white being fully opaque.
func (m *FadeMask) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		v := color.Gray{Y: toByte(m.rows[y] * 255)}
		for x := 0; x < m.width; x++ {
			img.SetGray(x, y, v)
		}
	}
	return img
}

func toByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
