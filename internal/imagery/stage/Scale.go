package stage

import (
	"github.com/surrey-law-society/site-images/internal/imagery"
)

// ScaleStage resizes the image with Catmull-Rom resampling. Leaving Height at
// zero keeps the aspect ratio.
type ScaleStage struct {
	Width  int
	Height int
}

func (s *ScaleStage) Process(p *imagery.Image) error {
	scaled, err := imagery.Scale(p.Img, s.Width, s.Height)
	if err != nil {
		return err
	}
	p.Img = scaled
	return nil
}
