package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/chain"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/walletconfig"
)

type (
	Server struct {
		router   *gin.Engine
		http     *http.Server
		registry *chain.Registry
		wallet   *walletconfig.Config
		log      *zap.Logger
		requests *prometheus.CounterVec
		latency  *prometheus.HistogramVec
	}

	encodeRequest struct {
		Signature string `json:"signature" binding:"required"`
		Amount    string `json:"amount" binding:"required"`
		Decimals  *uint8 `json:"decimals"`
	}

	encodeResponse struct {
		Signature string `json:"signature"`
		Selector  string `json:"selector"`
		Data      string `json:"data"`
	}
)

// New wires the HTTP routes. Metrics are registered on reg.
func New(addr string, registry *chain.Registry, wallet *walletconfig.Config, reg prometheus.Registerer, gatherer prometheus.Gatherer, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	s := &Server{
		router:   gin.New(),
		registry: registry,
		wallet:   wallet,
		log:      log,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vnet",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vnet",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	for _, c := range []prometheus.Collector{s.requests, s.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	s.router.Use(gin.Recovery(), s.observe)
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	v1.GET("/wallet-config", s.walletConfig)
	v1.GET("/chains", s.listChains)
	v1.GET("/chains/:id", s.getChain)
	v1.GET("/chains/:id/add-params", s.addChainParams)
	v1.POST("/calldata", s.encode)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(stopCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}

func (s *Server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	s.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	s.log.Debug("http request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Duration("took", time.Since(start)),
	)
}

func (s *Server) walletConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.wallet)
}

func (s *Server) listChains(c *gin.Context) {
	c.JSON(http.StatusOK, s.registry.All())
}

func (s *Server) lookup(c *gin.Context) (chain.Chain, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chain id must be a decimal integer"})
		return chain.Chain{}, false
	}
	ch, err := s.registry.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return chain.Chain{}, false
	}
	return ch, true
}

func (s *Server) getChain(c *gin.Context) {
	if ch, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, ch)
	}
}

func (s *Server) addChainParams(c *gin.Context) {
	if ch, ok := s.lookup(c); ok {
		c.JSON(http.StatusOK, ch.AddChainParams())
	}
}

func (s *Server) encode(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decimals := uint8(18)
	if req.Decimals != nil {
		decimals = *req.Decimals
	}

	f, err := calldata.NewFunction(req.Signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := calldata.EncodeAmount(f.Signature(), req.Amount, decimals)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sel := f.Selector()
	c.JSON(http.StatusOK, encodeResponse{
		Signature: f.Signature(),
		Selector:  calldata.Hex(sel[:]),
		Data:      calldata.Hex(data),
	})
}
