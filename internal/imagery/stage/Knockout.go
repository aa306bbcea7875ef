package stage

import (
	"image"
	"image/color"
	"math"

	"github.com/surrey-law-society/site-images/internal/imagery"
)

// KnockoutStage makes a solid backdrop transparent, for logos that were
// exported without an alpha channel.
type KnockoutStage struct {
	Tolerance float64
	Target    color.Color
}

// Process replaces pixels close to the target color with transparency based on the distance to that color
// Tolerance defines how close a pixel must be to the target color to be affected
// A pixel exactly matching the target color becomes fully transparent, one at the edge of the tolerance remains opaque
func (s *KnockoutStage) Process(p *imagery.Image) error {
	if s.Tolerance <= 0 {
		return nil
	}
	target := s.Target
	if target == nil {
		target = color.White
	}

	out := image.NewNRGBA(p.Bounds)
	tR, tG, tB, _ := target.RGBA()
	rR, rG, rB := float64(tR>>8), float64(tG>>8), float64(tB>>8)
	for y := p.Bounds.Min.Y; y < p.Bounds.Max.Y; y++ {
		for x := p.Bounds.Min.X; x < p.Bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(p.Img.At(x, y)).(color.NRGBA)
			R, G, B, A := float64(c.R), float64(c.G), float64(c.B), float64(c.A)
			dist := math.Sqrt((rR-R)*(rR-R) + (rG-G)*(rG-G) + (rB-B)*(rB-B))
			if dist < s.Tolerance {
				c.A = uint8((dist / s.Tolerance) * A)
			}
			out.SetNRGBA(x, y, c)
		}
	}
	p.Img = out
	return nil
}
