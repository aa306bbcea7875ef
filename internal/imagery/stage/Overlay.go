package stage

import (
	"errors"
	"image"

	"github.com/surrey-law-society/site-images/internal/imagery"
)

// OverlayStage centres a faded logo over the image being processed.
type OverlayStage struct {
	Logo    image.Image
	Options imagery.CombineOptions
}

func (s *OverlayStage) Process(p *imagery.Image) error {
	if s.Logo == nil {
		return errors.New("overlay stage has no logo")
	}
	combined, err := imagery.Combine(p.Img, s.Logo, s.Options)
	if err != nil {
		return err
	}
	p.Img = combined
	return nil
}
