// Package avatar normalizes uploaded profile images: it accepts PNG or JPEG,
// scales to a fixed square and re-encodes as PNG so the stored blob has a
// single predictable format.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxUploadBytes caps the accepted upload size
	MaxUploadBytes = 1 << 20 // 1 MiB

	// Size is the side length of the stored square image
	Size = 250
)

// Process validates and normalizes an uploaded image. Unsupported formats
// and undecodable data are rejected.
func Process(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxUploadBytes)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("please upload an image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}

	return buf.Bytes(), nil
}
