package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kilianp07/roadrisk/core/form"
	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/core/prediction"
	"github.com/kilianp07/roadrisk/core/predictlog"
	"github.com/kilianp07/roadrisk/infra/logger"
)

const maxBodyBytes = 1 << 20

// Assessor evaluates a road form.
type Assessor interface {
	Assess(ctx context.Context, in form.Input) (model.Assessment, error)
}

// LatestSource exposes the most recent assessment and a feed of new ones.
type LatestSource interface {
	Latest() (model.Assessment, bool)
	Subscribe() <-chan model.Assessment
	Unsubscribe(ch <-chan model.Assessment)
}

// Handler serves the prediction API.
type Handler struct {
	assessor Assessor
	latest   LatestSource
	logs     predictlog.LogStore
	dataset  []model.RoadObservation
	token    string
	log      logger.Logger
}

// NewHandler creates a Handler. logs may be nil when prediction logging is
// disabled. token protects the log endpoint when non-empty.
func NewHandler(assessor Assessor, latest LatestSource, logs predictlog.LogStore, dataset []model.RoadObservation, token string) *Handler {
	return &Handler{
		assessor: assessor,
		latest:   latest,
		logs:     logs,
		dataset:  dataset,
		token:    token,
		log:      logger.New("api"),
	}
}

// RegisterRoutes sets up all API routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/dataset", h.handleDataset).Methods(http.MethodGet)
	r.HandleFunc("/api/predictions", h.handlePredict).Methods(http.MethodPost)
	r.HandleFunc("/api/predictions/latest", h.handleLatest).Methods(http.MethodGet)
	r.HandleFunc("/api/predictions/stream", h.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/api/predictions/logs", h.handleLogs).Methods(http.MethodGet)
}

// Router returns a new router with all routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleDataset(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"size":  len(h.dataset),
		"roads": h.dataset,
	})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in form.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err))
		return
	}
	a, err := h.assessor.Assess(r.Context(), in)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, a)
	case errors.Is(err, form.ErrInvalidForm), errors.Is(err, prediction.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Errorf("assess %q: %v", in.RoadName, err)
		h.respondError(w, http.StatusInternalServerError, "prediction failed")
	}
}

func (h *Handler) handleLatest(w http.ResponseWriter, _ *http.Request) {
	a, ok := h.latest.Latest()
	if !ok {
		h.respondError(w, http.StatusNotFound, "no assessment yet")
		return
	}
	h.respondJSON(w, http.StatusOK, a)
}

// handleStream pushes assessments as server-sent events. The current
// assessment, if any, is sent first.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	ch := h.latest.Subscribe()
	defer h.latest.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(a)
			if err != nil {
				h.log.Errorf("marshal assessment: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: assessment\nid: %s\ndata: %s\n\n", a.ID, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) handleLogs(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && r.Header.Get("Authorization") != "Bearer "+h.token {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if h.logs == nil {
		h.respondError(w, http.StatusNotFound, "prediction log disabled")
		return
	}
	q := predictlog.Query{RoadName: r.URL.Query().Get("road")}
	if s := r.URL.Query().Get("start"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.Start = t
		}
	}
	if s := r.URL.Query().Get("end"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.End = t
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			q.Limit = n
		}
	}
	records, err := h.logs.Query(r.Context(), q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []predictlog.Record{}
	}
	h.respondJSON(w, http.StatusOK, records)
}
