package detection

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"cleansweep-be/models"
)

// Result is the inference service's analysis of a candidate litter photo.
type Result struct {
	Count      int                `json:"count"`
	Categories []string           `json:"categories"`
	Detections []models.Detection `json:"detections"`
}

// Classifier scores a candidate litter photo. Image content validation
// lives entirely behind this interface; the submission path only surfaces
// its outcome.
type Classifier interface {
	Detect(ctx context.Context, image []byte) (*Result, error)
}

// HTTPClassifier calls an external inference service over JSON.
type HTTPClassifier struct {
	URL    string
	Client *http.Client
}

// NewHTTPClassifier builds a classifier from the INFERENCE_URL
// environment variable.
func NewHTTPClassifier() *HTTPClassifier {
	return &HTTPClassifier{
		URL:    os.Getenv("INFERENCE_URL"),
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTPClassifier) Detect(ctx context.Context, image []byte) (*Result, error) {
	if h.URL == "" {
		return nil, errors.New("INFERENCE_URL environment variable is not set")
	}

	payloadBytes, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("inference service returned status: " + resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
