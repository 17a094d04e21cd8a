package images

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
)

// blurHashSize is the maximum edge of the downscaled image used for
// blurhash encoding. The hash only captures a few DCT components, so
// anything larger just burns CPU.
const blurHashSize = 64

// ComputeBlurHash encodes a compact blurhash placeholder string for an
// image. Clients render it as a blurred preview while the real image
// loads.
func ComputeBlurHash(img image.Image) (string, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return "", fmt.Errorf("image has no pixels")
	}

	if width > blurHashSize || height > blurHashSize {
		scale := float64(blurHashSize) / float64(max(width, height))
		scaledW := max(int(float64(width)*scale), 1)
		scaledH := max(int(float64(height)*scale), 1)

		scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	hash, err := blurhash.Encode(4, 3, img)
	if err != nil {
		return "", fmt.Errorf("failed to encode blurhash: %w", err)
	}

	return hash, nil
}
