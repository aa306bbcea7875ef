package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/surrey-law-society/site-images/internal/imagery"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur to the image using the specified Sigma value
// Higher Sigma values result in a more pronounced blur effect, zero or less is a no-op
func (s *GaussianBlurStage) Process(p *imagery.Image) error {
	if s.Sigma <= 0 {
		return nil
	}
	p.Img = blur.Gaussian(p.Img, s.Sigma)
	return nil
}
