// Package model holds the prediction model artifact and its acquisition path:
// a read-through cache over the mounted file system backed by the model
// bucket, plus the deployment-time seeding of that bucket.
package model

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	// DefaultKey is the well-known object key of the model artifact.
	DefaultKey = "model.json"
	// DefaultCacheDir is the mount path of the shared cache file system
	// inside the execution environment.
	DefaultCacheDir = "/mnt/models"
)

// Predictor is the deserialized model artifact.
//
// Predict is a placeholder: it returns the constant output stored in the
// artifact and performs no inference on its input. A real predictor replaces
// this type behind the same Decode/Predict surface.
type Predictor struct {
	Name      string  `json:"name"`
	Framework string  `json:"framework,omitempty"`
	Output    float64 `json:"output"`
}

func (p *Predictor) Predict(features []float64) float64 {
	return p.Output
}

// Decode deserializes an artifact. A corrupt or truncated artifact is a
// decode error, never a cache miss.
func Decode(r io.Reader) (*Predictor, error) {
	p := &Predictor{}
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	return p, nil
}

func Encode(w io.Writer, p *Predictor) error {
	return json.NewEncoder(w).Encode(p)
}
