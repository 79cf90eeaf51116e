package pokergenerator

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/astroforgit/pokergenerator/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerboard(width, height int) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, width, height), palette.Mode15)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetColorIndex(x, y, uint8((x+y)%4))
		}
	}
	return m
}

func TestImportImageSameSize(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, ExportPNG(&b, checkerboard(160, 140)))

	m, err := ImportImage(&b, 160, 140)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 140), m.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(palette.Mode15[1]), m.At(1, 0))
	assert.Equal(t, color.RGBAModel.Convert(palette.Mode15[3]), m.At(2, 1))
}

func TestImportImageResize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 80, 70))
	for y := 0; y < 70; y++ {
		for x := 0; x < 80; x++ {
			if x < 40 {
				src.Set(x, y, color.White)
			} else {
				src.Set(x, y, color.Black)
			}
		}
	}

	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, src))

	m, err := ImportImage(&b, 160, 140)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 160, 140), m.Bounds())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, m.At(10, 10))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, m.At(150, 130))
}

func TestImportImageInvalid(t *testing.T) {
	_, err := ImportImage(bytes.NewReader([]byte("not an image")), 160, 140)
	assert.Error(t, err)
}
