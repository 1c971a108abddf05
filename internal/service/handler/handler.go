// Package handler exposes the relevance service over HTTP: corpus
// lifecycle, sentence ranking, token diagnostics, cache administration,
// and recent query history.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/relevanced/relevanced/internal/ingest"
	"github.com/relevanced/relevanced/internal/querylog"
	"github.com/relevanced/relevanced/internal/relevance/corpus"
	"github.com/relevanced/relevanced/internal/relevance/ranker"
	"github.com/relevanced/relevanced/internal/relevance/stemmer"
	"github.com/relevanced/relevanced/internal/service/cache"
	"github.com/relevanced/relevanced/internal/service/store"
	"github.com/relevanced/relevanced/pkg/config"
	apperrors "github.com/relevanced/relevanced/pkg/errors"
	"github.com/relevanced/relevanced/pkg/metrics"
	"github.com/relevanced/relevanced/pkg/middleware"
)

// HistoryReader serves recent query-log events. Satisfied by
// querylog.PostgresStore.
type HistoryReader interface {
	Recent(ctx context.Context, corpusID string, limit int) ([]querylog.Event, error)
}

// Handler wires the relevance core to HTTP. The cache, publisher,
// collector, and history fields are optional; a nil field disables that
// feature and the corresponding endpoints degrade gracefully.
type Handler struct {
	store     *store.Store
	cache     *cache.RankCache
	publisher *ingest.Publisher
	validator *ingest.Validator
	collector *querylog.Collector
	history   HistoryReader
	metrics   *metrics.Metrics
	cfg       config.RelevanceConfig
	stem      stemmer.Stemmer
	logger    *slog.Logger
}

// New creates a Handler. Optional collaborators may be nil.
func New(
	s *store.Store,
	c *cache.RankCache,
	pub *ingest.Publisher,
	col *querylog.Collector,
	hist HistoryReader,
	m *metrics.Metrics,
	cfg config.RelevanceConfig,
) *Handler {
	return &Handler{
		store:     s,
		cache:     c,
		publisher: pub,
		validator: ingest.NewValidator(cfg.MaxDocumentSize),
		collector: col,
		history:   hist,
		metrics:   m,
		cfg:       cfg,
		stem:      stemmer.New(cfg.Stemmer),
		logger:    slog.Default().With("component", "handler"),
	}
}

// Routes registers all API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/corpora", h.createCorpus)
	mux.HandleFunc("GET /api/v1/corpora", h.listCorpora)
	mux.HandleFunc("DELETE /api/v1/corpora/{id}", h.deleteCorpus)
	mux.HandleFunc("GET /api/v1/corpora/{id}/rank", h.rank)
	mux.HandleFunc("GET /api/v1/corpora/{id}/tokens/{token}", h.tokenStats)
	mux.HandleFunc("GET /api/v1/cache/stats", h.cacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.cacheInvalidate)
	mux.HandleFunc("GET /api/v1/queries/recent", h.recentQueries)
}

func (h *Handler) createCorpus(w http.ResponseWriter, r *http.Request) {
	var req ingest.CorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "malformed JSON body"))
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	if req.Async {
		if h.publisher == nil {
			writeError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest,
				"async ingestion is not enabled"))
			return
		}
		if err := h.publisher.Publish(r.Context(), req); err != nil {
			h.logger.Error("async publish failed", "corpus_id", req.CorpusID, "error", err)
			writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError,
				"failed to queue corpus for ingestion"))
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{
			"corpus_id": req.CorpusID,
			"status":    "queued",
		})
		return
	}

	built := corpus.New(req.Text, corpus.WithStemmer(h.stem))
	if err := h.store.Create(req.CorpusID, built); err != nil {
		writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CorporaCreatedTotal.WithLabelValues("http").Inc()
		h.metrics.CorporaActive.Set(float64(h.store.Count()))
	}
	h.logger.Info("corpus created", "corpus_id", req.CorpusID, "sentences", built.Len())
	writeJSON(w, http.StatusCreated, map[string]any{
		"corpus_id": req.CorpusID,
		"sentences": built.Len(),
	})
}

func (h *Handler) listCorpora(w http.ResponseWriter, r *http.Request) {
	infos := h.store.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"corpora": infos,
		"count":   len(infos),
	})
}

func (h *Handler) deleteCorpus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.InvalidateCorpus(r.Context(), id); err != nil {
			h.logger.Warn("cache invalidation after delete failed", "corpus_id", id, "error", err)
		}
	}
	if h.metrics != nil {
		h.metrics.CorporaActive.Set(float64(h.store.Count()))
	}
	h.logger.Info("corpus deleted", "corpus_id", id)
	w.WriteHeader(http.StatusNoContent)
}

type rankResponse struct {
	CorpusID string          `json:"corpus_id"`
	Query    string          `json:"query"`
	Results  []ranker.Result `json:"results"`
	Count    int             `json:"count"`
	CacheHit bool            `json:"cache_hit"`
}

func (h *Handler) rank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := r.PathValue("id")
	query := r.URL.Query().Get("q")
	limit := h.parseLimit(r.URL.Query().Get("limit"))

	c, err := h.store.Get(id)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RankQueriesTotal.WithLabelValues("error").Inc()
		}
		writeError(w, err)
		return
	}

	var (
		results  []ranker.Result
		cacheHit bool
	)
	if h.cache != nil {
		results, cacheHit, err = h.cache.GetOrCompute(r.Context(), id, query, limit, func() ([]ranker.Result, error) {
			return ranker.Rank(c, query, limit), nil
		})
		if err != nil {
			if h.metrics != nil {
				h.metrics.RankQueriesTotal.WithLabelValues("error").Inc()
			}
			writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "ranking failed"))
			return
		}
	} else {
		results = ranker.Rank(c, query, limit)
	}

	elapsed := time.Since(start)
	h.observeRank(results, cacheHit, elapsed)
	h.trackQuery(r.Context(), id, query, results, cacheHit, elapsed)

	if results == nil {
		results = []ranker.Result{}
	}
	writeJSON(w, http.StatusOK, rankResponse{
		CorpusID: id,
		Query:    query,
		Results:  results,
		Count:    len(results),
		CacheHit: cacheHit,
	})
}

func (h *Handler) observeRank(results []ranker.Result, cacheHit bool, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	outcome := "matched"
	if len(results) == 0 {
		outcome = "zero_result"
	}
	h.metrics.RankQueriesTotal.WithLabelValues(outcome).Inc()
	h.metrics.RankedSentences.Observe(float64(len(results)))
	status := "miss"
	if cacheHit {
		status = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.RankLatency.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (h *Handler) trackQuery(ctx context.Context, id, query string, results []ranker.Result, cacheHit bool, elapsed time.Duration) {
	if h.collector == nil {
		return
	}
	var top float64
	if len(results) > 0 {
		top = results[0].Score
	}
	h.collector.Track(querylog.Event{
		CorpusID:  id,
		Query:     query,
		Matched:   len(results),
		Returned:  len(results),
		TopScore:  top,
		LatencyMs: float64(elapsed.Microseconds()) / 1000.0,
		CacheHit:  cacheHit,
		RequestID: middleware.GetRequestID(ctx),
	})
}

func (h *Handler) tokenStats(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	token := r.PathValue("token")

	c, err := h.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	stats := c.TokenStats(token)
	writeJSON(w, http.StatusOK, map[string]any{
		"corpus_id": id,
		"raw":       token,
		"stats":     stats,
	})
}

func (h *Handler) cacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	hits, misses := h.cache.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"hits":    hits,
		"misses":  misses,
	})
}

func (h *Handler) cacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "cache invalidation failed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) recentQueries(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	corpusID := r.URL.Query().Get("corpus_id")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	events, err := h.history.Recent(r.Context(), corpusID, limit)
	if err != nil {
		h.logger.Error("query history lookup failed", "error", err)
		writeError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "query history unavailable"))
		return
	}
	if events == nil {
		events = []querylog.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"queries": events,
		"count":   len(events),
	})
}

// parseLimit clamps the caller's limit to [1, MaxResults], defaulting when
// missing or malformed.
func (h *Handler) parseLimit(raw string) int {
	limit := h.cfg.DefaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if h.cfg.MaxResults > 0 && limit > h.cfg.MaxResults {
		limit = h.cfg.MaxResults
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatusCode(err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
