// Command server exposes the morphological analyzer as a JSON REST API.
//
// Endpoints:
//
//	POST /api/analyze        body: {"text":"..."}
//	GET  /api/analyze?text=<text>
//	GET  /api/languages
//	GET  /healthz
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/sync/singleflight"

	"github.com/slavic-nlp/hunmorph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ---- JSON response types ------------------------------------------------

type readingJSON struct {
	Language string `json:"language"`
	Stem     string `json:"stem"`
}

type tokenResultJSON struct {
	Token    string        `json:"token"`
	Readings []readingJSON `json:"readings"`
}

type analyzeResponse struct {
	Results []tokenResultJSON `json:"results"`
}

type languagesResponse struct {
	Languages    []string            `json:"languages"`
	Dictionaries map[string][]string `json:"dictionaries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- metrics --------------------------------------------------------------

type serverMetrics struct {
	requestsTotal   *prometheus.CounterVec
	analyzeDuration prometheus.Histogram
	tokensPerCall   prometheus.Histogram
	readingsTotal   prometheus.Counter
}

func newServerMetrics() *serverMetrics {
	m := &serverMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hunmorph_http_requests_total",
				Help: "Total number of HTTP requests by path and status.",
			},
			[]string{"path", "status"},
		),
		analyzeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hunmorph_analyze_duration_seconds",
				Help:    "Latency of one analyze call in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		tokensPerCall: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hunmorph_tokens_per_call",
				Help:    "Number of distinct tokens per analyze call.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
			},
		),
		readingsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hunmorph_readings_total",
				Help: "Total number of readings returned across all calls.",
			},
		),
	}
	prometheus.MustRegister(m.requestsTotal, m.analyzeDuration, m.tokensPerCall, m.readingsTotal)
	return m
}

// ---- helpers ------------------------------------------------------------

func setupLogger(cfg loggingCfg) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func toAnalyzeResponse(result *hunmorph.Result) analyzeResponse {
	tokens := result.Tokens()
	out := make([]tokenResultJSON, 0, len(tokens))
	for _, tok := range tokens {
		readings, _ := result.Readings(tok)
		rj := make([]readingJSON, 0, len(readings))
		for _, r := range readings {
			rj = append(rj, readingJSON{Language: r.Language, Stem: r.Stem})
		}
		out = append(out, tokenResultJSON{Token: tok, Readings: rj})
	}
	return analyzeResponse{Results: out}
}

func writeJSON(w http.ResponseWriter, m *serverMetrics, path string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "path", path, "err", err)
	}
	m.requestsTotal.WithLabelValues(path, http.StatusText(status)).Inc()
}

func writeError(w http.ResponseWriter, m *serverMetrics, path string, status int, msg string) {
	writeJSON(w, m, path, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(a *hunmorph.Analyzer, m *serverMetrics, group *singleflight.Group) http.HandlerFunc {
	const path = "/api/analyze"
	return func(w http.ResponseWriter, r *http.Request) {
		var text string
		switch r.Method {
		case http.MethodGet:
			text = r.URL.Query().Get("text")
		case http.MethodPost:
			var body struct {
				Text string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, m, path, http.StatusBadRequest, "body must be JSON with a 'text' field")
				return
			}
			text = body.Text
		default:
			writeError(w, m, path, http.StatusMethodNotAllowed, "GET or POST required")
			return
		}

		// Identical texts in flight at the same time share one
		// analysis; the result is read-only so sharing is safe.
		v, err, _ := group.Do(text, func() (any, error) {
			start := time.Now()
			result, err := a.Analyze(text)
			if err != nil {
				return nil, err
			}
			m.analyzeDuration.Observe(time.Since(start).Seconds())
			m.tokensPerCall.Observe(float64(result.Len()))
			return result, nil
		})
		if err != nil {
			slog.Error("analyze failed", "err", err)
			status := http.StatusInternalServerError
			if errors.Is(err, hunmorph.ErrTransport) {
				status = http.StatusBadGateway
			}
			writeError(w, m, path, status, err.Error())
			return
		}

		resp := toAnalyzeResponse(v.(*hunmorph.Result))
		for _, tr := range resp.Results {
			m.readingsTotal.Add(float64(len(tr.Readings)))
		}
		writeJSON(w, m, path, http.StatusOK, resp)
	}
}

func handleLanguages(a *hunmorph.Analyzer, m *serverMetrics) http.HandlerFunc {
	const path = "/api/languages"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, m, path, http.StatusMethodNotAllowed, "GET required")
			return
		}
		dicts := make(map[string][]string)
		for lang, pairs := range a.Dictionaries() {
			for _, p := range pairs {
				dicts[lang] = append(dicts[lang], p.Dic)
			}
		}
		writeJSON(w, m, path, http.StatusOK, languagesResponse{
			Languages:    a.Languages(),
			Dictionaries: dicts,
		})
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// ---- main ---------------------------------------------------------------

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	setupLogger(cfg.Logging)

	analyzer, err := hunmorph.New(cfg.analyzerConfig())
	if err != nil {
		slog.Error("load dictionaries", "err", err)
		os.Exit(1)
	}
	for lang, pairs := range analyzer.Dictionaries() {
		slog.Info("dictionaries loaded", "language", lang, "pairs", len(pairs))
	}
	if len(analyzer.Languages()) == 0 {
		slog.Warn("no dictionaries found; every token will come back unknown")
	}

	metrics := newServerMetrics()
	var flights singleflight.Group

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", handleAnalyze(analyzer, metrics, &flights))
	mux.HandleFunc("/api/languages", handleLanguages(analyzer, metrics))
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}
