package stage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrey-law-society/site-images/internal/imagery"
)

func solid(w, h int, c color.NRGBA) *imagery.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return imagery.NewImage(img, imagery.FormatPNG)
}

func at(p *imagery.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(p.Img.At(x, y)).(color.NRGBA)
}

func TestEnhanceStage(t *testing.T) {
	grey := color.NRGBA{R: 100, G: 100, B: 100, A: 255}

	t.Run("unit multipliers leave the image alone", func(t *testing.T) {
		img := solid(4, 4, grey)
		before := img.Img
		require.NoError(t, img.Pipeline(&EnhanceStage{Brightness: 1, Contrast: 1, Saturation: 1}))
		assert.Same(t, before, img.Img)
	})

	t.Run("brightness", func(t *testing.T) {
		img := solid(4, 4, grey)
		require.NoError(t, img.Pipeline(&EnhanceStage{Brightness: 1.5, Contrast: 1, Saturation: 1}))
		assert.Greater(t, at(img, 1, 1).R, uint8(140))
	})

	t.Run("contrast pushes dark pixels darker", func(t *testing.T) {
		img := solid(4, 4, grey)
		require.NoError(t, img.Pipeline(&EnhanceStage{Brightness: 1, Contrast: 1.5, Saturation: 1}))
		assert.Less(t, at(img, 1, 1).R, uint8(100))
	})

	t.Run("zero saturation gives grey", func(t *testing.T) {
		img := solid(4, 4, color.NRGBA{R: 200, G: 50, B: 50, A: 255})
		require.NoError(t, img.Pipeline(&EnhanceStage{Brightness: 1, Contrast: 1, Saturation: 0}))
		c := at(img, 2, 2)
		assert.InDelta(t, int(c.R), int(c.G), 1)
		assert.InDelta(t, int(c.G), int(c.B), 1)
	})

	t.Run("negative multiplier", func(t *testing.T) {
		img := solid(4, 4, grey)
		assert.Error(t, img.Pipeline(&EnhanceStage{Brightness: -1, Contrast: 1, Saturation: 1}))
	})
}

func TestGaussianBlurStage(t *testing.T) {
	img := imagery.NewImage(image.NewNRGBA(image.Rect(0, 0, 9, 9)), imagery.FormatPNG)
	img.Img.(*image.NRGBA).SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	t.Run("zero sigma is a no-op", func(t *testing.T) {
		before := img.Img
		require.NoError(t, img.Pipeline(&GaussianBlurStage{Sigma: 0}))
		assert.Same(t, before, img.Img)
	})

	t.Run("spreads a bright pixel", func(t *testing.T) {
		require.NoError(t, img.Pipeline(&GaussianBlurStage{Sigma: 1.0}))
		assert.Less(t, at(img, 4, 4).A, uint8(255))
		assert.Greater(t, at(img, 5, 4).A, uint8(0))
	})
}

func TestKnockoutStage(t *testing.T) {
	img := solid(3, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Img.(*image.NRGBA).SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 128, A: 255})
	img.Img.(*image.NRGBA).SetNRGBA(2, 0, color.NRGBA{R: 250, G: 250, B: 250, A: 255})

	require.NoError(t, img.Pipeline(&KnockoutStage{Tolerance: 50, Target: color.White}))

	assert.Equal(t, uint8(0), at(img, 0, 0).A)
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 128, A: 255}, at(img, 1, 0))
	assert.Less(t, at(img, 2, 0).A, uint8(50))
	assert.Greater(t, at(img, 2, 0).A, uint8(0))
}

func TestKnockoutStageDisabled(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	before := img.Img
	require.NoError(t, img.Pipeline(&KnockoutStage{}))
	assert.Same(t, before, img.Img)
}

func TestScaleStage(t *testing.T) {
	img := solid(30, 10, color.NRGBA{G: 255, A: 255})
	require.NoError(t, img.Pipeline(&ScaleStage{Width: 12}))
	assert.Equal(t, image.Rect(0, 0, 12, 4), img.Bounds)
	assert.GreaterOrEqual(t, at(img, 6, 2).G, uint8(250))
}

func TestOverlayStage(t *testing.T) {
	bg := solid(20, 20, color.NRGBA{A: 255})
	logo := solid(10, 10, color.NRGBA{R: 255, A: 255}).Img

	opts := imagery.CombineOptions{LogoScale: 0.5, Fade: imagery.Fade{Start: 1, End: 1}}
	require.NoError(t, bg.Pipeline(&OverlayStage{Logo: logo, Options: opts}))

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, at(bg, 10, 10))
	assert.Equal(t, color.NRGBA{A: 255}, at(bg, 1, 1))

	assert.Error(t, bg.Pipeline(&OverlayStage{Options: opts}))
}
