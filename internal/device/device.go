// Package device holds the pieces of the device collaborators (photo library,
// location, URL dispatch) that the core interprets itself.
package device

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPermissionDenied = errors.New("доступ к устройству запрещён")
	ErrBadImage         = errors.New("некорректное изображение")
)

// Placemark is a reverse-geocoded position as the shell reports it.
// Denied is set when the user refused the location permission.
type Placemark struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Denied  bool   `json:"denied"`
}

// Describe formats p, or reports the refused permission.
func (p Placemark) Describe() (string, error) {
	if p.Denied {
		return "", ErrPermissionDenied
	}
	return FormatPlacemark(p.City, p.Region, p.Country), nil
}

// FormatPlacemark joins the reverse-geocoded parts that are present.
func FormatPlacemark(city, region, country string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, region, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// DecodeImage accepts the inline base64 the photo picker returns, with or
// without a data URL prefix.
func DecodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	if encoded == "" {
		return nil, ErrBadImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return data, nil
}
