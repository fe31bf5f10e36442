package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	txt, err := New(Config{Size: 16, Padding: 2, Background: color.Black})
	require.NoError(t, err)
	img, err := txt.Render("60 FPS (16.7 ms)")
	require.NoError(t, err)
	w, h := txt.Measure("60 FPS (16.7 ms)")
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())

	// Some pixels must have been painted with the foreground over the black background.
	var lit int
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 128 {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "no text rasterized")

	again, err := txt.Render("60 FPS (16.7 ms)")
	require.NoError(t, err)
	assert.Same(t, img, again, "unchanged text re-rasterized")
	other, err := txt.Render("59 FPS (16.9 ms)")
	require.NoError(t, err)
	assert.NotSame(t, img, other)
}

func TestMeasureGrowsWithText(t *testing.T) {
	txt, err := New(Config{})
	require.NoError(t, err)
	w1, h1 := txt.Measure("1")
	w2, h2 := txt.Measure("1234567890")
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)
	w0, _ := txt.Measure("")
	assert.GreaterOrEqual(t, w0, 1)
}

func TestBadConfig(t *testing.T) {
	_, err := New(Config{TTF: []byte("not a font")})
	assert.Error(t, err)
	_, err = New(Config{Size: -1})
	assert.Error(t, err)
}
