package internal

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surrey-law-society/site-images/internal/config"
	"github.com/surrey-law-society/site-images/internal/imagery"
	"github.com/surrey-law-society/site-images/internal/imagery/stage"
)

// Summary tallies the outcome of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Errors    []error
}

func (s Summary) Failed() int {
	return s.Total - s.Succeeded
}

func (s Summary) Merge(other Summary) Summary {
	return Summary{
		Total:     s.Total + other.Total,
		Succeeded: s.Succeeded + other.Succeeded,
		Errors:    append(append([]error(nil), s.Errors...), other.Errors...),
	}
}

// Processor runs the configured enhancements and combinations one after the
// other. A failing job is logged and counted; the rest still run.
type Processor struct {
	startTime time.Time
	endTime   time.Time
	cfg       config.Config
}

func NewProcessor(cfg config.Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("images directory %s not found, run from the project root or pass --dir", cfg.Dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", cfg.Dir)
	}

	return &Processor{cfg: cfg}, nil
}

// Run enhances the backgrounds first, since the default combinations read
// the enhanced files.
func (p *Processor) Run() Summary {
	p.startTime = time.Now()
	summary := p.Enhance().Merge(p.Combine())
	p.endTime = time.Now()
	log.Info().
		Dur("elapsed", p.endTime.Sub(p.startTime)).
		Int("errors", len(summary.Errors)).
		Msg("All images processed")
	return summary
}

func (p *Processor) Enhance() Summary {
	log.Info().Int("count", len(p.cfg.Enhancements)).Msg("Enhancing background images")
	summary := Summary{Total: len(p.cfg.Enhancements)}
	for _, e := range p.cfg.Enhancements {
		output := p.cfg.Path(e.Output)
		if err := p.enhance(e); err != nil {
			log.Error().Err(err).Str("output", output).Msg("Error enhancing image")
			summary.Errors = append(summary.Errors, fmt.Errorf("%s: %w", output, err))
			continue
		}
		log.Info().Str("output", output).Msg("Enhanced")
		summary.Succeeded++
	}
	return summary
}

func (p *Processor) Combine() Summary {
	log.Info().Int("count", len(p.cfg.Combinations)).Msg("Creating combined images with logo fade effect")
	summary := Summary{Total: len(p.cfg.Combinations)}
	for _, c := range p.cfg.Combinations {
		output := p.cfg.Path(c.Output)
		if err := p.combine(c); err != nil {
			log.Error().Err(err).Str("output", output).Msg("Error creating image")
			summary.Errors = append(summary.Errors, fmt.Errorf("%s: %w", output, err))
			continue
		}
		log.Info().Str("output", output).Msg("Created")
		summary.Succeeded++
	}
	return summary
}

func (p *Processor) enhance(e config.Enhancement) error {
	img, err := imagery.Open(p.cfg.Path(e.Input))
	if err != nil {
		return err
	}
	if e.Quality > 0 {
		img.Quality = e.Quality
	}

	err = img.Pipeline(
		&stage.EnhanceStage{Brightness: e.Brightness, Contrast: e.Contrast, Saturation: e.Saturation},
		&stage.GaussianBlurStage{Sigma: e.BlurSigma},
	)
	if err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	return img.Save(p.cfg.Path(e.Output))
}

func (p *Processor) combine(c config.Combination) error {
	opts, err := c.Options()
	if err != nil {
		return err
	}

	background, err := imagery.Open(p.cfg.Path(c.Background))
	if err != nil {
		return err
	}

	logo, err := imagery.Open(p.cfg.Path(c.Logo))
	if err != nil {
		return err
	}
	err = logo.Pipeline(&stage.KnockoutStage{Tolerance: c.KnockoutTolerance, Target: color.White})
	if err != nil {
		return fmt.Errorf("failed to prepare logo: %w", err)
	}

	if err := background.Pipeline(&stage.OverlayStage{Logo: logo.Img, Options: opts}); err != nil {
		return fmt.Errorf("failed to combine images: %w", err)
	}

	return background.Save(p.cfg.Path(c.Output))
}

// Outputs lists the combined images in configuration order.
func (p *Processor) Outputs() []string {
	outputs := make([]string, len(p.cfg.Combinations))
	for i, c := range p.cfg.Combinations {
		outputs[i] = p.cfg.Path(c.Output)
	}
	return outputs
}
