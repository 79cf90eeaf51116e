package pokergenerator

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/gift"
)

// ExportPNG writes m to w as a PNG.
func ExportPNG(w io.Writer, m image.Image) error {
	return png.Encode(w, m)
}

// ImportImage decodes a PNG, GIF or JPEG picture from r and returns it at
// exactly width by height pixels. Pictures of another size are scaled with
// nearest neighbour sampling so existing pixel art keeps hard edges.
func ImportImage(r io.Reader, width, height int) (image.Image, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	if b.Dx() == width && b.Dy() == height {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
		return dst, nil
	}

	g := gift.New(gift.Resize(width, height, gift.NearestNeighborResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, m)
	return dst, nil
}
