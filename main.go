package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/surrey-law-society/site-images/cmd"
	"github.com/surrey-law-society/site-images/internal"
	"github.com/surrey-law-society/site-images/internal/config"
	"github.com/surrey-law-society/site-images/internal/logging"
)

func main() {
	var dir string
	var configFile string
	var strict bool

	envErr := godotenv.Load()
	logging.Setup(os.Getenv("LOG_LEVEL"))
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	loadConfig := func() config.Config {
		cfg := config.Default()
		if configFile != "" {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to load configuration")
			}
		}
		if dir != "" {
			cfg.Dir = dir
		}
		return cfg
	}

	build := func(step cmd.Step) func(*cobra.Command, []string) {
		return func(_ *cobra.Command, _ []string) {
			if err := cmd.Build(loadConfig(), step, strict); err != nil {
				log.Fatal().Err(err).Msg("build failed")
			}
		}
	}

	rootCmd := &cobra.Command{
		Use:  "site-images",
		Long: `Enhances the society website backgrounds and overlays the logo with a fade`,
		Run:  build(cmd.StepAll),
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", os.Getenv("SITE_IMAGES_DIR"), "Path to images folder (default \"images\")")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", os.Getenv("SITE_IMAGES_CONFIG"), "Path to a json, toml or yaml manifest")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Exit non-zero when any image fails")

	buildCmd := &cobra.Command{
		Use:   "build [--dir <path>] [--config <file>] [--strict]",
		Short: "Enhance backgrounds then create the combined images",
		Run:   build(cmd.StepAll),
	}

	enhanceCmd := &cobra.Command{
		Use:   "enhance",
		Short: "Only enhance the background images",
		Run:   build(cmd.StepEnhance),
	}

	combineCmd := &cobra.Command{
		Use:   "combine",
		Short: "Only overlay the logo onto the (already enhanced) backgrounds",
		Run:   build(cmd.StepCombine),
	}

	var maskWidth, maskHeight int
	var fadeStart, fadeEnd float64
	maskCmd := &cobra.Command{
		Use:   "mask <output.png> [--width <px>] [--height <px>] [--fade-start <f>] [--fade-end <f>]",
		Short: "Render a fade mask as a greyscale image",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.Mask(args[0], maskWidth, maskHeight, fadeStart, fadeEnd); err != nil {
				log.Fatal().Err(err).Msg("failed to render mask")
			}
		},
	}
	maskCmd.Flags().IntVar(&maskWidth, "width", 200, "Mask width in pixels")
	maskCmd.Flags().IntVar(&maskHeight, "height", 200, "Mask height in pixels")
	maskCmd.Flags().Float64Var(&fadeStart, "fade-start", 0.2, "Where the fade begins (0.0 = top, 1.0 = bottom)")
	maskCmd.Flags().Float64Var(&fadeEnd, "fade-end", 0.7, "Where the fade ends (0.0 = top, 1.0 = bottom)")

	var animWidth int
	var frameDelay float64
	animateCmd := &cobra.Command{
		Use:   "animate <output.png> [--width <px>] [--delay <seconds>]",
		Short: "Preview the combined images as an animated PNG",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.Animate(loadConfig(), args[0], animWidth, frameDelay); err != nil {
				log.Fatal().Err(err).Msg("failed to animate")
			}
		},
	}
	animateCmd.Flags().IntVar(&animWidth, "width", 640, "Frame width in pixels (0 keeps the original size)")
	animateCmd.Flags().Float64Var(&frameDelay, "delay", 2.0, "Seconds per frame")

	defaultConfigCmd := &cobra.Command{
		Use:   "defaultconfig <file.{json,toml,yaml}>",
		Short: "Write the built-in configuration to a file",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.DefaultConfig(args[0]); err != nil {
				log.Fatal().Err(err).Msg("failed to write default config")
			}
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			internal.ShowVersion()
		},
	}

	rootCmd.AddCommand(buildCmd, enhanceCmd, combineCmd, maskCmd, animateCmd, defaultConfigCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
