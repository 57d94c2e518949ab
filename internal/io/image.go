package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService provides image processing operations for cover art.
//
// Lossless sources often carry very large embedded artwork. Before that
// artwork is re-embedded into an output file's tags it is scaled down to a
// sane size and re-encoded as JPEG.
//
// Example usage:
//
//	svc := NewImageService()
//	resized, _ := svc.ResizeImage(pictureData, 1000, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be processed (re-encoded as JPEG).
//
// Returns the resized image as JPEG-encoded bytes. The Catmull-Rom
// algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.ResizeImage(imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x667
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Dimensions reports an image's width and height without re-encoding it.
//
// Used to decide whether embedded artwork needs resizing at all; artwork
// that already fits is embedded untouched, preserving the original bytes.
func (s *ImageService) Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
