package export

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/san-kum/pondsim/internal/pond"
)

// Image converts a rendered frame into an RGBA image.
func Image(pixels []pond.Pixel, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height {
		return nil, &pond.BufferSizeError{Want: width * height, Got: len(pixels)}
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, pixels[x+y*width].RGBA())
		}
	}
	return img, nil
}

// WritePNG writes a frame to path as PNG.
func WritePNG(path string, pixels []pond.Pixel, width, height int) error {
	img, err := Image(pixels, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
