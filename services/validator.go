package services

import (
	"encoding/base64"
	"errors"
	"math"
	"strings"
)

// Validation errors, surfaced before any submission leaves the handler.
var (
	ErrMissingImage       = errors.New("image is required")
	ErrMissingDescription = errors.New("description is required")
	ErrMissingLocation    = errors.New("lat and lon are required")
	ErrInvalidImage       = errors.New("image is not valid base64")
)

// SubmissionPayload is a validated, shaped before/after submission. Image
// holds raw bytes with the transport encoding already stripped.
type SubmissionPayload struct {
	Image       []byte
	Lat         float64
	Lon         float64
	Description string
	Username    string
}

// ValidateBeforeSubmission checks and shapes a litter report submission.
// Image, description and a complete coordinate pair are all mandatory;
// manually entered coordinates go through the same rule as device GPS.
func ValidateBeforeSubmission(image, description string, lat, lon *float64, username string) (*SubmissionPayload, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrMissingImage
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrMissingDescription
	}
	payload, err := buildPayload(image, lat, lon, username)
	if err != nil {
		return nil, err
	}
	payload.Description = strings.TrimSpace(description)
	return payload, nil
}

// ValidateAfterSubmission checks and shapes a cleanup submission. Same
// rules as a before submission except the description is optional.
func ValidateAfterSubmission(image, description string, lat, lon *float64, username string) (*SubmissionPayload, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrMissingImage
	}
	payload, err := buildPayload(image, lat, lon, username)
	if err != nil {
		return nil, err
	}
	payload.Description = strings.TrimSpace(description)
	return payload, nil
}

func buildPayload(image string, lat, lon *float64, username string) (*SubmissionPayload, error) {
	if lat == nil || lon == nil || math.IsNaN(*lat) || math.IsNaN(*lon) {
		return nil, ErrMissingLocation
	}
	raw, err := DecodeImage(image)
	if err != nil {
		return nil, err
	}
	return &SubmissionPayload{
		Image:    raw,
		Lat:      *lat,
		Lon:      *lon,
		Username: username,
	}, nil
}

// DecodeImage strips an optional "data:image/...;base64," prefix and
// decodes the remaining base64 body.
func DecodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, ","); idx >= 0 {
			s = s[idx+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

// EncodeImageDataURI renders stored image bytes as the data URI the
// frontend consumes directly.
func EncodeImageDataURI(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
}
