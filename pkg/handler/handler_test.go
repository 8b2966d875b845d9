package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wcheek/tensorstack/pkg/model"
)

func TestParseVector(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []float64
		wantErr bool
	}{
		{
			name: "bracketed list",
			raw:  "[1,2.5,3]",
			want: []float64{1.0, 2.5, 3.0},
		},
		{
			name: "single element",
			raw:  "[42]",
			want: []float64{42.0},
		},
		{
			name: "negative and exponent",
			raw:  "[-1,2e3]",
			want: []float64{-1, 2000},
		},
		{
			name:    "non numeric token",
			raw:     "[1,foo,3]",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVector(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseVector() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func warmLoader(t *testing.T, p *model.Predictor) *model.Loader {
	t.Helper()
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, model.DefaultKey))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := model.Encode(f, p); err != nil {
		t.Fatal(err)
	}
	return &model.Loader{CacheDir: dir, Key: model.DefaultKey}
}

func TestPredictEndToEnd(t *testing.T) {
	h := &Handler{Models: warmLoader(t, &model.Predictor{Name: "stub", Output: 1})}
	server := httptest.NewServer(route(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/predict?q=[1,2,3]")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "The predicted value is 1") {
		t.Errorf("body = %q, want the stub prediction value", string(body))
	}
}

func TestPredictMalformedQuery(t *testing.T) {
	h := &Handler{Models: warmLoader(t, &model.Predictor{Output: 1})}
	server := httptest.NewServer(route(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/predict?q=[1,foo]")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		t.Fatal("status = 200 for a malformed query")
	}
}

func TestHealthz(t *testing.T) {
	h := &Handler{Models: warmLoader(t, &model.Predictor{Output: 1})}
	server := httptest.NewServer(route(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
