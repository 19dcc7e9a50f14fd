package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/kilianp07/roadrisk/api/predictions"
	"github.com/kilianp07/roadrisk/config"
	"github.com/kilianp07/roadrisk/core/assessment"
	"github.com/kilianp07/roadrisk/core/dataset"
	coremetrics "github.com/kilianp07/roadrisk/core/metrics"
	"github.com/kilianp07/roadrisk/core/model"
	coremqtt "github.com/kilianp07/roadrisk/core/mqtt"
	"github.com/kilianp07/roadrisk/core/prediction"
	"github.com/kilianp07/roadrisk/core/predictlog"
	"github.com/kilianp07/roadrisk/infra/logger"
	"github.com/kilianp07/roadrisk/infra/metrics"
	"github.com/kilianp07/roadrisk/infra/mqtt"
)

// Service wires the prediction engine to its HTTP API and to the
// assessment consumers: metrics, prediction log and MQTT.
type Service struct {
	Assessor *assessment.Assessor
	Store    *assessment.Store
	Engine   *prediction.KNNEngine

	handler    *predictions.Handler
	sink       coremetrics.MetricsSink
	logs       predictlog.LogStore
	publisher  coremqtt.Publisher
	queue      *publishQueue
	disconnect func()
	log        logger.Logger

	httpAddr string
	promAddr string

	mu    sync.Mutex
	addr  net.Addr
	ready chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Log)
	logg := logger.New("service")

	ds, err := loadDataset(cfg.Engine.DatasetPath)
	if err != nil {
		return nil, err
	}
	engine, err := prediction.NewKNNEngine(ds, cfg.Engine.K)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if rec, ok := sink.(coremetrics.DatasetSizeRecorder); ok {
		if err := rec.RecordDatasetSize(engine.DatasetSize()); err != nil {
			logg.Warnf("record dataset size: %v", err)
		}
	}

	logs, err := predictlog.Open(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("prediction log: %w", err)
	}

	svc := &Service{
		Engine:   engine,
		Store:    assessment.NewStore(),
		sink:     sink,
		logs:     logs,
		queue:    newPublishQueue(),
		log:      logg,
		httpAddr: cfg.HTTP.Addr,
		promAddr: cfg.Metrics.PrometheusAddr,
		ready:    make(chan struct{}),
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
		svc.disconnect = pub.Disconnect
	}
	svc.Assessor = assessment.NewAssessor(engine, cfg.Form, svc.Store, logger.New("assessor"))
	if logs != nil {
		svc.Assessor.AddRecorder(predictlog.Recorder{Store: logs})
	}
	svc.Assessor.AddRecorder(metrics.NewPredictionRecorder(sink))
	svc.Assessor.AddRecorder(svc.queue)
	svc.handler = predictions.NewHandler(svc.Assessor, svc.Store, logs, ds, cfg.HTTP.Token)
	logg.Infof("engine ready: %d reference roads, k=%d", engine.DatasetSize(), engine.K())
	return svc, nil
}

func loadDataset(path string) ([]model.RoadObservation, error) {
	if path == "" {
		return dataset.Default()
	}
	return dataset.Load(path)
}

// Handler returns the HTTP handler serving the prediction API.
func (s *Service) Handler() http.Handler { return s.handler.Router() }

// Ready is closed once the HTTP listener is bound.
func (s *Service) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound HTTP address, or nil before Ready is closed.
func (s *Service) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves the API and forwards assessments to the configured consumers.
// It blocks until the context is cancelled or the HTTP server fails.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpAddr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	close(s.ready)

	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	forwardDone := s.forward(ctx)

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	s.log.Infof("HTTP API listening on %s", ln.Addr())

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Streaming clients hold their requests open until the store closes.
	s.Store.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		s.log.Errorf("http shutdown: %v", err)
	}
	<-forwardDone
	return runErr
}

// forward publishes assessments over MQTT. The prediction log and metrics
// are recorded by the assessor itself. Failures are logged and do not stop
// the loop.
func (s *Service) forward(ctx context.Context) <-chan struct{} {
	if s.publisher == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.queue.run(ctx, s.publisher, logger.New("forward"))
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Store.Close()
	if s.disconnect != nil {
		s.disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if s.logs != nil {
		return s.logs.Close()
	}
	return nil
}
