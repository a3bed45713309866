// Package qr renders UPI pay links as QR codes for terminals and files.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Level is the error correction level of a generated code.
type Level = qrcode.RecoveryLevel

// DefaultLevel is used when no level is configured.
const DefaultLevel = qrcode.Medium

var levels = map[string]Level{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

// ParseLevel maps low, medium, high or highest to a recovery level. The
// empty string selects DefaultLevel.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return DefaultLevel, nil
	}
	l, ok := levels[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown qr level %q", s)
	}
	return l, nil
}

// Render draws content as a QR code using half-block characters, two
// modules per terminal row.
func Render(content string, level Level) (string, error) {
	code, err := qrcode.New(content, level)
	if err != nil {
		return "", fmt.Errorf("qr: %w", err)
	}
	return code.ToSmallString(false), nil
}

// WritePNG writes content as a size x size PNG to path.
func WritePNG(content string, level Level, size int, path string) error {
	if err := qrcode.WriteFile(content, level, size, path); err != nil {
		return fmt.Errorf("qr: write %s: %w", path, err)
	}
	return nil
}
