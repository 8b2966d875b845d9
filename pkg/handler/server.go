package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/go-logr/logr"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	tserrors "github.com/wcheek/tensorstack/pkg/errors"
)

type Options struct {
	Listen         string
	TLS            *TLSOptions
	AllowedOrigins []string
}

type TLSOptions struct {
	CertFile string
	KeyFile  string
}

func DefaultOptions() *Options {
	return &Options{
		Listen:         ":8080",
		TLS:            &TLSOptions{},
		AllowedOrigins: []string{"*"},
	}
}

// Run serves the prediction handler locally, mirroring what the function URL
// exposes: GET /predict, permissive CORS by default, request logging.
func Run(ctx context.Context, opts *Options, h *Handler) error {
	log := logr.FromContextOrDiscard(ctx)

	router := route(h)
	handler := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)(router)
	handler = handlers.CombinedLoggingHandler(os.Stdout, handler)

	server := http.Server{
		Addr:    opts.Listen,
		Handler: handler,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()
	if opts.TLS.CertFile != "" && opts.TLS.KeyFile != "" {
		log.Info("handler listening", "https", opts.Listen)
		return server.ListenAndServeTLS(opts.TLS.CertFile, opts.TLS.KeyFile)
	} else {
		log.Info("handler listening", "http", opts.Listen)
		return server.ListenAndServe()
	}
}

func route(h *Handler) http.Handler {
	router := mux.NewRouter()
	router = router.StrictSlash(true)
	router.Methods("GET").Path("/healthz").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Methods("GET").Path("/predict").Handler(h)
	return router
}

func ResponseError(w http.ResponseWriter, err error) {
	info := tserrors.ErrorInfo{}
	if !errors.As(err, &info) {
		info = tserrors.ErrorInfo{
			HttpStatus: http.StatusInternalServerError,
			Code:       tserrors.ErrCodeInternal,
			Message:    err.Error(),
			Detail:     err.Error(),
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(info.HttpStatus)
	json.NewEncoder(w).Encode(info)
}
