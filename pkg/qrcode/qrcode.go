package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is a sensible pixel size for web and mobile scanning.
const DefaultSize = 256

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("qrcode content is empty")

// Generate renders content as a PNG QR code with medium error correction.
// A non-positive size falls back to DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// GenerateBase64Image renders content as a base64 data URI for direct
// embedding in an <img> tag.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
