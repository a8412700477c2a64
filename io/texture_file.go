package io

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/bmp"

	"render-engine/scene"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// LoadTextureFile decodes a PNG, JPEG, or BMP file from disk into an RGBA8
// scene.Texture. The pipeline never interprets file formats itself — this
// is the one place image decoding happens.
func LoadTextureFile(path string) (*scene.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return &scene.Texture{
		Name:       path,
		Width:      w,
		Height:     h,
		Components: 4,
		Pixels:     rgba.Pix,
	}, nil
}
