package insights

import (
	"net/http"
	"time"
)

const readHeaderTimeout = 5 * time.Second

type Probes interface {
	ListenAndServe()
	Shutdown()
}

type probesImpl struct {
	isConnected func() bool
	server      *http.Server
}
