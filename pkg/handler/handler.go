// Package handler implements the prediction request path: parse the query
// vector, acquire the model through its cache, predict, format the response.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	tserrors "github.com/wcheek/tensorstack/pkg/errors"
	"github.com/wcheek/tensorstack/pkg/model"
)

// QueryParam carries the bracketed numeric list, e.g. ?q=[1,2.5,3].
const QueryParam = "q"

// ModelSource yields the loaded model. *model.Loader implements it.
type ModelSource interface {
	Get(ctx context.Context) (*model.Predictor, error)
}

type Handler struct {
	Models ModelSource
}

// ParseVector parses a textual numeric list of the form "[1,2.5,3]": split on
// commas, strip a single leading bracket from the first token and a single
// trailing bracket from the last, convert each token. Anything non-numeric is
// an error, never silently coerced.
func ParseVector(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	parts[0] = strings.TrimPrefix(parts[0], "[")
	parts[len(parts)-1] = strings.TrimSuffix(parts[len(parts)-1], "]")

	features := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, tserrors.NewQueryInvalidError(fmt.Sprintf("not a number: %q", part))
		}
		features = append(features, v)
	}
	return features, nil
}

// Predict runs one invocation: parse, acquire, predict, format. Failures
// propagate to the caller; only the cache miss inside the loader is recovered
// internally.
func (h *Handler) Predict(ctx context.Context, rawQuery string) (string, error) {
	features, err := ParseVector(rawQuery)
	if err != nil {
		return "", err
	}
	m, err := h.Models.Get(ctx)
	if err != nil {
		return "", err
	}
	prediction := m.Predict(features)
	return fmt.Sprintf("The predicted value is %v", prediction), nil
}

// ServeHTTP answers GET requests carrying the query parameter. Success is
// always 200 with a plain-text body and a permissive cross-origin header.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := h.Predict(r.Context(), r.URL.Query().Get(QueryParam))
	if err != nil {
		ResponseError(w, err)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
