// Package status serves the state of a running driver over HTTP.
package status

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/driver"
	"github.com/bemasher/rtlwx/parse"
)

// State is what the server reports on.
type State interface {
	Latest() *parse.Packet
	Detected() []driver.Detection
}

// Decoder is a registry entry as listed by /decoders.
type Decoder struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Text       bool   `json:"text"`
	JSON       bool   `json:"json"`
}

type Server struct {
	addr     string
	state    State
	registry *parse.Registry
	engine   *gin.Engine
}

// New builds the routes. gatherer serves /metrics, nil uses the default
// prometheus registry.
func New(addr string, state State, registry *parse.Registry, gatherer prometheus.Gatherer) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{addr: addr, state: state, registry: registry, engine: engine}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/latest", s.handleLatest)
	engine.GET("/sensors", s.handleSensors)
	engine.GET("/decoders", s.handleDecoders)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("status server listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "status server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleLatest(c *gin.Context) {
	pkt := s.state.Latest()
	if pkt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no packet emitted yet"})
		return
	}
	c.JSON(http.StatusOK, pkt.Map())
}

func (s *Server) handleSensors(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.Detected())
}

func (s *Server) handleDecoders(c *gin.Context) {
	decoders := s.registry.Decoders()

	out := make([]Decoder, 0, len(decoders))
	for _, d := range decoders {
		out = append(out, Decoder{
			Name:       d.Name,
			Identifier: d.Identifier,
			Text:       d.Text != nil,
			JSON:       d.JSON != nil,
		})
	}
	c.JSON(http.StatusOK, out)
}
