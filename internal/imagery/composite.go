package imagery

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

var ErrInvalidScale = errors.New("invalid logo scale")

// AlphaMode controls how the fade mask combines with a logo's own alpha.
type AlphaMode string

const (
	// AlphaMultiply scales the logo's existing alpha by the mask, keeping
	// soft edges and transparent backgrounds intact.
	AlphaMultiply AlphaMode = "multiply"
	// AlphaReplace discards the logo's alpha and uses the mask alone.
	AlphaReplace AlphaMode = "replace"
)

func ParseAlphaMode(s string) (AlphaMode, error) {
	switch AlphaMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlphaMultiply:
		return AlphaMultiply, nil
	case AlphaReplace:
		return AlphaReplace, nil
	default:
		return "", fmt.Errorf("unknown alpha mode %q (want %q or %q)", s, AlphaMultiply, AlphaReplace)
	}
}

type CombineOptions struct {
	// LogoScale is the fraction of the background width the logo occupies.
	LogoScale float64
	Fade      Fade
	AlphaMode AlphaMode
}

func DefaultCombineOptions() CombineOptions {
	return CombineOptions{
		LogoScale: 0.6,
		Fade:      Fade{Start: 0.2, End: 0.7},
		AlphaMode: AlphaMultiply,
	}
}

func (o CombineOptions) Validate() error {
	if math.IsNaN(o.LogoScale) || o.LogoScale <= 0 || o.LogoScale > 1 {
		return fmt.Errorf("%w: %g must be in (0, 1]", ErrInvalidScale, o.LogoScale)
	}
	if _, err := ParseAlphaMode(string(o.AlphaMode)); err != nil {
		return err
	}
	return o.Fade.Validate()
}

// LogoSize returns the resized logo dimensions: scale times the background
// width, with the height following the logo's aspect ratio.
func LogoSize(background, logo image.Point, scale float64) (image.Point, error) {
	if math.IsNaN(scale) || scale <= 0 || scale > 1 {
		return image.Point{}, fmt.Errorf("%w: %g must be in (0, 1]", ErrInvalidScale, scale)
	}
	if logo.X <= 0 || logo.Y <= 0 {
		return image.Point{}, fmt.Errorf("%w: logo is %dx%d", ErrInvalidDimensions, logo.X, logo.Y)
	}

	width := int(float64(background.X) * scale)
	height := int(float64(width) * float64(logo.Y) / float64(logo.X))
	if width <= 0 || height <= 0 {
		return image.Point{}, fmt.Errorf("%w: logo would be resized to %dx%d", ErrInvalidDimensions, width, height)
	}
	return image.Pt(width, height), nil
}

// CenterOffset is the top-left position that centres logo over background.
func CenterOffset(background, logo image.Point) image.Point {
	return image.Pt((background.X-logo.X)/2, (background.Y-logo.Y)/2)
}

// ResizeLogo resamples logo to size with a Lanczos-3 filter and returns a
// fresh non-premultiplied copy that callers may modify.
func ResizeLogo(logo image.Image, size image.Point) *image.NRGBA {
	src := logo
	if logo.Bounds().Size() != size {
		src = resize.Resize(uint(size.X), uint(size.Y), logo, resize.Lanczos3)
	}
	return toNRGBA(src)
}

// ApplyFadeMask rewrites the alpha channel of logo in place.
func ApplyFadeMask(logo *image.NRGBA, mask *FadeMask, mode AlphaMode) {
	b := logo.Bounds()
	for y := 0; y < b.Dy(); y++ {
		opacity := mask.Row(y)
		for x := 0; x < b.Dx(); x++ {
			i := logo.PixOffset(b.Min.X+x, b.Min.Y+y)
			switch mode {
			case AlphaReplace:
				logo.Pix[i+3] = toByte(255 * opacity)
			default:
				logo.Pix[i+3] = toByte(float64(logo.Pix[i+3]) * opacity)
			}
		}
	}
}

// Combine overlays logo, faded by opts.Fade, centred on background. The
// result is a new opaque image; neither input is modified.
func Combine(background, logo image.Image, opts CombineOptions) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	out := clone.AsRGBA(background)
	bgBounds := out.Bounds()
	if bgBounds.Empty() {
		return nil, fmt.Errorf("%w: background is %dx%d", ErrInvalidDimensions, bgBounds.Dx(), bgBounds.Dy())
	}

	size, err := LogoSize(bgBounds.Size(), logo.Bounds().Size(), opts.LogoScale)
	if err != nil {
		return nil, err
	}

	faded := ResizeLogo(logo, size)
	mask, err := GenerateFadeMask(size.X, size.Y, opts.Fade.Start, opts.Fade.End)
	if err != nil {
		return nil, err
	}
	ApplyFadeMask(faded, mask, opts.AlphaMode)

	offset := bgBounds.Min.Add(CenterOffset(bgBounds.Size(), size))
	blendOver(out, faded, offset)
	return out, nil
}

// blendOver applies source-over blending of src onto dst with src's
// top-left corner at offset. Every dst pixel ends up fully opaque; any
// translucent background pixel keeps its straight colour.
func blendOver(dst *image.RGBA, src *image.NRGBA, offset image.Point) {
	db := dst.Bounds()
	for y := db.Min.Y; y < db.Max.Y; y++ {
		for x := db.Min.X; x < db.Max.X; x++ {
			i := dst.PixOffset(x, y)
			if a := uint32(dst.Pix[i+3]); a > 0 && a < 0xff {
				for c := 0; c < 3; c++ {
					dst.Pix[i+c] = uint8(min(255, (uint32(dst.Pix[i+c])*255+a/2)/a))
				}
			}
			dst.Pix[i+3] = 0xff
		}
	}

	sb := src.Bounds()
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			p := offset.Add(image.Pt(x, y))
			if !p.In(db) {
				continue
			}
			si := src.PixOffset(sb.Min.X+x, sb.Min.Y+y)
			a := uint32(src.Pix[si+3])
			if a == 0 {
				continue
			}
			di := dst.PixOffset(p.X, p.Y)
			for c := 0; c < 3; c++ {
				s := uint32(src.Pix[si+c])
				d := uint32(dst.Pix[di+c])
				dst.Pix[di+c] = uint8((s*a + d*(255-a) + 127) / 255)
			}
		}
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
