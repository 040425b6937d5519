package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessedAvatar is a normalized avatar ready for storage
type ProcessedAvatar struct {
	Data        []byte
	ContentType string
	Size        int
}

// Config for avatar processing
type Config struct {
	Side    int // square side length in pixels (default 256)
	Quality int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		Side:    256,
		Quality: 85,
	}
}

// Processor normalizes uploaded avatar images
type Processor struct {
	config Config
}

// NewProcessor creates avatar processor
func NewProcessor(config Config) *Processor {
	if config.Side <= 0 {
		config.Side = 256
	}
	if config.Quality <= 0 {
		config.Quality = 85
	}
	return &Processor{config: config}
}

// Process decodes an uploaded image, center-crops it to a square and
// resizes it to the configured side length
func (p *Processor) Process(reader io.Reader) (*ProcessedAvatar, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	square := imaging.Fill(img, p.config.Side, p.config.Side, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	contentType := "image/jpeg"
	switch format {
	case "png":
		contentType = "image/png"
		err = png.Encode(&buf, square)
	default:
		err = jpeg.Encode(&buf, square, &jpeg.Options{Quality: p.config.Quality})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ProcessedAvatar{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Size:        buf.Len(),
	}, nil
}
