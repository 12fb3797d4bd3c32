package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/healerlk/healer/canvas"
	"github.com/healerlk/healer/config"
	"github.com/healerlk/healer/db"
	"github.com/healerlk/healer/detector"
	field "github.com/healerlk/healer/particle-field"
	"github.com/healerlk/healer/relay"
	"github.com/healerlk/healer/server"
	"github.com/healerlk/healer/terminal"
	"github.com/healerlk/healer/websocket"
)

//go:generate sh -c "GOOS=js GOARCH=wasm go build -o static/healer.wasm ./wasm"
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" static/"

var (
	mode      = flag.String("mode", "serve", "Run mode: serve, terminal or snapshot")
	configDir = flag.String("config", "./data", "Directory holding config.yaml")
	width     = flag.Int("w", 1200, "Snapshot width in pixels")
	height    = flag.Int("h", 630, "Snapshot height in pixels")
	frames    = flag.Int("frames", 120, "Number of frames simulated before the snapshot")
	output    = flag.String("o", "snow.png", "Snapshot output file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.Log.File
	// termbox owns the screen, logs go to a file instead.
	if *mode == "terminal" && logFile == "" {
		logFile = "debug.log"
	}
	logger, closeLog, err := newLogger(cfg.Log.Level, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fieldCfg := field.DefaultConfig()
	if cfg.Field.Count > 0 {
		fieldCfg.Count = cfg.Field.Count
	}

	switch *mode {
	case "serve":
		err = serve(ctx, logger, cfg, fieldCfg)
	case "terminal":
		err = terminal.New(logger, fieldCfg, cfg.Field.FPS).Render(ctx)
	case "snapshot":
		err = snapshot(fieldCfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("exiting", "mode", *mode, "error", err)
		closeLog()
		os.Exit(1)
	}
}

func serve(ctx context.Context, logger *slog.Logger, cfg *config.Config, fieldCfg field.Config) error {
	dbConn, err := db.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	repo := db.NewRepo(dbConn)
	defer repo.Close()

	rc := relay.New(cfg.Relay.Endpoint, cfg.Relay.Timeout)
	if !rc.Enabled() {
		logger.Warn("no relay endpoint configured, bookings are only stored")
	}

	// A nil *detector.Detector must not end up in the interface.
	var locator websocket.Locator
	if cfg.Detector.Cascade != "" {
		d, err := detector.Load(cfg.Detector.Cascade)
		if err != nil {
			return err
		}
		locator = d
		logger.Info("face steering enabled", "cascade", cfg.Detector.Cascade)
	}
	fieldHandler := websocket.NewHandler(logger, fieldCfg, cfg.Field.FPS, locator)

	srv, err := server.New(logger, cfg, repo, rc, fieldHandler)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func snapshot(fieldCfg field.Config) error {
	seed := uint64(time.Now().UnixNano())
	pointer := field.Point{X: float64(*width) / 2, Y: float64(*height) / 2}
	c, err := canvas.Snapshot(*width, *height, *frames, pointer, fieldCfg, rand.New(rand.NewPCG(seed, seed>>1)), canvas.DefaultBackground)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.WritePNG(*output)
}

func newLogger(level, file string) (*slog.Logger, func(), error) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	closer := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closer = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel})), closer, nil
}
