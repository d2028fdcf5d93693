// Command boardd serves a board document over HTTP: the controller's
// intent surface as a small JSON API, persistence in SQLite, and the
// resolved background image re-exported as PNG.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/board"
)

func main() {
	var (
		configPath = flag.String("config", "boardd.yaml", "config file")
		listen     = flag.String("listen", "", "listen address (overrides config)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	board.SetLogger(logger)

	cfg, err := board.LoadConfig(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	cfg.Logger = logger
	if *listen != "" {
		cfg.Listen = *listen
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("boardd failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *board.Config, logger *slog.Logger) error {
	opts := cfg.Options()
	if cfg.StorePath != "" {
		store, err := board.OpenSQLiteStore(cfg.StorePath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, board.WithStore(store))
	}

	ctl, err := board.NewController(opts...)
	if err != nil {
		return err
	}
	defer ctl.Close()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newRouter(ctl, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("boardd listening", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newRouter(ctl *board.Controller, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/document", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, ctl.Document())
	})

	r.Post("/stickers", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Text string  `json:"text"`
			X    float64 `json:"x"` // viewport coordinates
			Y    float64 `json:"y"`
			Size int     `json:"size"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s, err := ctl.AddSticker(in.Text, board.Pt(in.X, in.Y), in.Size)
		if err != nil {
			logger.Error("add sticker", "err", err)
			http.Error(w, "persist failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, s)
	})

	r.Put("/background", func(w http.ResponseWriter, req *http.Request) {
		var ref board.Background
		if err := json.NewDecoder(req.Body).Decode(&ref); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := ctl.SetBackground(ref); err != nil {
			logger.Error("set background", "err", err)
			http.Error(w, "persist failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ref)
	})

	r.Get("/background/image", func(w http.ResponseWriter, req *http.Request) {
		img := ctl.BackgroundImage()
		if img == nil {
			http.Error(w, "no background image", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			logger.Error("encode background image", "err", err)
		}
	})

	r.Post("/timer/start", func(w http.ResponseWriter, req *http.Request) {
		ctl.StartTimer()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/timer/stop", func(w http.ResponseWriter, req *http.Request) {
		ctl.StopTimer()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/timer", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elapsed_seconds":` + strconv.Itoa(ctl.Elapsed()) +
			`,"running":` + strconv.FormatBool(ctl.TimerRunning()) + `}`))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
