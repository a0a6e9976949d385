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

// Thumbnail is a downscaled preview rendition of an uploaded image.
type Thumbnail struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Config bounds thumbnail dimensions and encoding quality.
type Config struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

func DefaultConfig() Config {
	return Config{MaxWidth: 480, MaxHeight: 480, Quality: 85}
}

// Processor renders preview thumbnails for image assets.
type Processor struct {
	config Config
}

func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Render decodes an image and produces a thumbnail that fits within
// the configured bounds, preserving aspect ratio. GIF and WebP inputs
// come back as JPEG.
func (p *Processor) Render(reader io.Reader) (*Thumbnail, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)

	encoded, contentType, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return &Thumbnail{
		Data:        encoded,
		ContentType: contentType,
		Width:       thumb.Bounds().Dx(),
		Height:      thumb.Bounds().Dy(),
	}, nil
}

func (p *Processor) encode(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
