package stage

import (
	"fmt"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/surrey-law-society/site-images/internal/imagery"
)

// EnhanceStage adjusts brightness, contrast and colour saturation, in that
// order. Each value is a multiplier where 1.0 leaves the image unchanged.
type EnhanceStage struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

// Process applies each adjustment whose multiplier differs from 1.0
// A multiplier of 0.0 gives the fully reduced image (black, flat grey or greyscale)
func (s *EnhanceStage) Process(p *imagery.Image) error {
	if s.Brightness < 0 || s.Contrast < 0 || s.Saturation < 0 {
		return fmt.Errorf("enhancement multipliers must not be negative (brightness=%g contrast=%g saturation=%g)",
			s.Brightness, s.Contrast, s.Saturation)
	}

	if s.Brightness != 1 {
		p.Img = adjust.Brightness(p.Img, s.Brightness-1)
	}
	if s.Contrast != 1 {
		p.Img = adjust.Contrast(p.Img, s.Contrast-1)
	}
	if s.Saturation != 1 {
		p.Img = adjust.Saturation(p.Img, s.Saturation-1)
	}
	return nil
}
