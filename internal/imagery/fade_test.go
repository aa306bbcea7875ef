package imagery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFadeMask(t *testing.T) {
	t.Run("concrete scenario", func(t *testing.T) {
		mask, err := GenerateFadeMask(10, 100, 0.2, 0.7)
		require.NoError(t, err)
		assert.Equal(t, 10, mask.Width())
		assert.Equal(t, 100, mask.Height())

		for y := 0; y < 20; y++ {
			assert.Equal(t, 1.0, mask.Row(y), "row %d", y)
		}
		assert.InDelta(t, 0.4, mask.Row(50), 1e-9)
		for y := 70; y < 100; y++ {
			assert.InDelta(t, 0.0, mask.Row(y), 1e-9, "row %d", y)
		}
	})

	t.Run("opaque at top when fade starts below it", func(t *testing.T) {
		for _, h := range []int{1, 2, 7, 480} {
			mask, err := GenerateFadeMask(3, h, 0.1, 0.9)
			require.NoError(t, err)
			assert.Equal(t, 1.0, mask.Row(0), "height %d", h)
		}
	})

	t.Run("transparent at bottom when fade ends above it", func(t *testing.T) {
		for _, h := range []int{2, 10, 99, 480} {
			mask, err := GenerateFadeMask(3, h, 0.1, 0.5)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, mask.Row(h-1), 1e-9, "height %d", h)
		}
	})

	t.Run("strictly decreasing inside the fade", func(t *testing.T) {
		const height = 300
		mask, err := GenerateFadeMask(4, height, 0.25, 0.75)
		require.NoError(t, err)

		prev := -1.0
		for y := 0; y < height; y++ {
			pos := float64(y) / height
			if pos <= 0.25 || pos >= 0.75 {
				continue
			}
			if prev >= 0 {
				assert.Less(t, mask.Row(y), prev, "row %d", y)
			}
			prev = mask.Row(y)
		}
	})

	t.Run("never increases down the mask", func(t *testing.T) {
		mask, err := GenerateFadeMask(1, 123, 0.3, 0.6)
		require.NoError(t, err)
		for y := 1; y < mask.Height(); y++ {
			assert.LessOrEqual(t, mask.Row(y), mask.Row(y-1))
		}
	})

	t.Run("constant across each row", func(t *testing.T) {
		mask, err := GenerateFadeMask(17, 40, 0.2, 0.8)
		require.NoError(t, err)
		for y := 0; y < mask.Height(); y++ {
			for x := 0; x < mask.Width(); x++ {
				assert.Equal(t, mask.Row(y), mask.At(x, y))
			}
		}
	})

	t.Run("equal boundaries give a step", func(t *testing.T) {
		mask, err := GenerateFadeMask(2, 10, 0.5, 0.5)
		require.NoError(t, err)
		for y := 0; y < 5; y++ {
			assert.Equal(t, 1.0, mask.Row(y))
		}
		for y := 5; y < 10; y++ {
			assert.Equal(t, 0.0, mask.Row(y))
		}
	})

	t.Run("zero end is fully transparent", func(t *testing.T) {
		mask, err := GenerateFadeMask(2, 10, 0, 0)
		require.NoError(t, err)
		for y := 0; y < 10; y++ {
			assert.Equal(t, 0.0, mask.Row(y))
		}
	})

	t.Run("start of one is fully opaque", func(t *testing.T) {
		mask, err := GenerateFadeMask(2, 10, 1, 1)
		require.NoError(t, err)
		for y := 0; y < 10; y++ {
			assert.Equal(t, 1.0, mask.Row(y))
		}
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
			_, err := GenerateFadeMask(dims[0], dims[1], 0.2, 0.7)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})

	t.Run("invalid fade", func(t *testing.T) {
		for _, f := range []Fade{{0.7, 0.2}, {-0.1, 0.5}, {0.2, 1.5}} {
			_, err := GenerateFadeMask(10, 10, f.Start, f.End)
			assert.ErrorIs(t, err, ErrInvalidFade, "%+v", f)
		}
	})

	t.Run("out of range lookups are transparent", func(t *testing.T) {
		mask, err := GenerateFadeMask(2, 2, 0.5, 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, mask.At(-1, 0))
		assert.Equal(t, 0.0, mask.At(2, 0))
		assert.Equal(t, 0.0, mask.Row(2))
	})
}

func TestFadeMaskImage(t *testing.T) {
	mask, err := GenerateFadeMask(3, 100, 0.2, 0.7)
	require.NoError(t, err)

	img := mask.Image()
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	assert.Equal(t, uint8(255), img.GrayAt(2, 0).Y)
	assert.Equal(t, uint8(102), img.GrayAt(1, 50).Y)
	assert.Equal(t, uint8(0), img.GrayAt(0, 99).Y)
}
