package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/surrey-law-society/site-images/internal"
	"github.com/surrey-law-society/site-images/internal/config"
)

type Step int

const (
	StepAll Step = iota
	StepEnhance
	StepCombine
)

// Build runs the requested part of the batch. Failed images are logged and
// only turn into an error when strict is set.
func Build(cfg config.Config, step Step, strict bool) error {
	internal.UserInfo()
	internal.EnvironmentVars()

	processor, err := internal.NewProcessor(cfg)
	if err != nil {
		return err
	}

	var summary internal.Summary
	switch step {
	case StepEnhance:
		summary = processor.Enhance()
	case StepCombine:
		summary = processor.Combine()
	default:
		summary = processor.Run()
	}

	log.Info().Msgf("Results: %d/%d images created successfully", summary.Succeeded, summary.Total)

	if summary.Failed() > 0 {
		log.Warn().Msg("Some images failed to create, check the errors above")
		if strict {
			return fmt.Errorf("%d of %d images failed", summary.Failed(), summary.Total)
		}
		return nil
	}

	if step != StepEnhance {
		for _, output := range processor.Outputs() {
			log.Info().Str("output", output).Msg("Ready to use in the site")
		}
	}
	return nil
}
