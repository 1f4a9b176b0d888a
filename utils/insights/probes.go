package insights

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

func NewProbes(isConnected func() bool, port int) Probes {
	probes := &probesImpl{isConnected: isConnected}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", probes.liveness)
	mux.HandleFunc("GET /readyz", probes.readiness)

	probes.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return probes
}

// ListenAndServe serves the probes in background.
func (p *probesImpl) ListenAndServe() {
	go func() {
		log.Info().Str("addr", p.server.Addr).Msg("Probes listening")
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Probes stopped")
		}
	}()
}

func (p *probesImpl) Shutdown() {
	if err := p.server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown probes, continuing...")
	}
}

func (p *probesImpl) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (p *probesImpl) readiness(w http.ResponseWriter, _ *http.Request) {
	if !p.isConnected() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
