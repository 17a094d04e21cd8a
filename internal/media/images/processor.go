package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// displayMaxEdge caps the long edge of the display variant.
	displayMaxEdge = 1024
	// thumbMaxEdge caps the long edge of the thumbnail variant.
	thumbMaxEdge = 256
	// maxSourceEdge rejects uploads too large to decode safely.
	maxSourceEdge = 8192

	jpegQuality = 85
)

// Result describes the stored variants of a processed upload.
type Result struct {
	DisplayPath string
	ThumbPath   string
	BlurHash    string
	Width       int
	Height      int
}

// Processor converts uploaded artwork images into stored JPEG
// variants plus a blurhash placeholder.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates an image processor writing through storage.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// Process decodes an uploaded image, renders the display and thumbnail
// variants, and stores both. JPEG, PNG, GIF, and WebP sources are
// accepted. Width and Height on the result are the display variant's
// pixel dimensions.
func (p *Processor) Process(ctx context.Context, artworkID string, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if artworkID == "" {
		return nil, fmt.Errorf("artwork ID cannot be empty")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	// Check dimensions from the header before decoding the full
	// pixel data.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	if cfg.Width > maxSourceEdge || cfg.Height > maxSourceEdge {
		return nil, fmt.Errorf("image dimensions %dx%d exceed the %d px limit", cfg.Width, cfg.Height, maxSourceEdge)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	display := scaleDown(src, displayMaxEdge)
	thumb := scaleDown(display, thumbMaxEdge)

	displayData, err := encodeJPEG(display)
	if err != nil {
		return nil, fmt.Errorf("failed to encode display image: %w", err)
	}
	thumbData, err := encodeJPEG(thumb)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if err := p.storage.Save(artworkID, VariantDisplay, displayData); err != nil {
		return nil, fmt.Errorf("failed to store display image: %w", err)
	}
	if err := p.storage.Save(artworkID, VariantThumb, thumbData); err != nil {
		return nil, fmt.Errorf("failed to store thumbnail: %w", err)
	}

	hash, err := ComputeBlurHash(thumb)
	if err != nil {
		// The placeholder is cosmetic, keep the upload.
		p.logger.Warn("failed to compute blurhash",
			"artwork_id", artworkID,
			"error", err,
		)
		hash = ""
	}

	bounds := display.Bounds()
	p.logger.Debug("processed artwork image",
		"artwork_id", artworkID,
		"format", format,
		"source_width", cfg.Width,
		"source_height", cfg.Height,
		"display_width", bounds.Dx(),
		"display_height", bounds.Dy(),
	)

	return &Result{
		DisplayPath: RelativePath(artworkID, VariantDisplay),
		ThumbPath:   RelativePath(artworkID, VariantThumb),
		BlurHash:    hash,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// scaleDown resizes img so its long edge fits maxEdge, preserving
// aspect ratio. Images already within the limit are returned as is.
func scaleDown(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxEdge && height <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(max(width, height))
	scaledW := max(int(float64(width)*scale), 1)
	scaledH := max(int(float64(height)*scale), 1)

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
	return scaled
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
