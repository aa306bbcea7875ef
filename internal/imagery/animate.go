package imagery

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/kettek/apng"
	"golang.org/x/image/draw"
)

// Scale resizes img with Catmull-Rom resampling. A zero height keeps the
// aspect ratio of the source.
func Scale(img image.Image, width, height int) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: cannot scale a %dx%d image", ErrInvalidDimensions, b.Dx(), b.Dy())
	}
	if height == 0 && width > 0 {
		height = int(float64(width) * float64(b.Dy()) / float64(b.Dx()))
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: cannot scale to %dx%d", ErrInvalidDimensions, width, height)
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled, nil
}

// Animate builds an endlessly looping APNG from files, showing each for
// frameDelay seconds. Every frame is scaled to width (keeping the first
// frame's aspect ratio) so frames of different sizes line up; width <= 0
// uses the first frame's own width.
func Animate(files []string, width int, frameDelay float64) ([]byte, error) {
	if len(files) == 0 {
		return nil, errors.New("no frames to animate")
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(files)),
		LoopCount: 0,
	}

	var size image.Point
	for i, fname := range files {
		img, err := Open(fname)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			b := img.Bounds
			if width <= 0 {
				width = b.Dx()
			}
			size = image.Pt(width, int(float64(width)*float64(b.Dy())/float64(b.Dx())))
		}

		frame, err := Scale(img.Img, size.X, size.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to scale %s: %w", fname, err)
		}

		a.Frames[i] = apng.Frame{
			Image:            frame,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
