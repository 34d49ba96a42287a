package main

import (
	"context"
	"errors"
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/fkcurrie/fm6126-scan/internal/config"
	"github.com/fkcurrie/fm6126-scan/internal/display"
	"github.com/fkcurrie/fm6126-scan/internal/monitor"
	"github.com/fkcurrie/fm6126-scan/internal/output"
	"github.com/fkcurrie/fm6126-scan/internal/rt"
	"github.com/fkcurrie/fm6126-scan/internal/types"
	"github.com/fkcurrie/fm6126-scan/pkg/matrix"
	"github.com/fkcurrie/fm6126-scan/pkg/painter"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

var (
	configPath = flag.String("config", "", "Path to a JSON configuration file")
	latency    = flag.Int("latency", 1, "Painter latency in ticks (0-2)")
	painterArg = flag.String("painter", "", "Painter: address, image or solid")
	backend    = flag.String("backend", "", "Output backend: gpiocdev, periph or none")
	httpAddr   = flag.String("http", "", "Monitor listen address")
	statsAddr  = flag.String("stats", "", "Serve runtime stats on this address")
	text       = flag.String("text", "", "Scrolling text for the image painter")
	imagePath  = flag.String("image", "", "Image file for the image painter")
	svgPath    = flag.String("svg", "", "SVG file for the image painter")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m, err := matrix.NewMatrix(&matrix.Config{Brightness: cfg.Panel.Brightness})
	if err != nil {
		log.Fatalf("Failed to create matrix: %v", err)
	}
	defer m.Close()
	if err := loadContent(m, &cfg.Panel); err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	out, err := output.Open(cfg.Output)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("Failed to close output: %v", err)
		}
	}()

	renderer, err := display.NewRenderer(&cfg.Panel, choosePainter(&cfg.Panel, m), out)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	renderer.SetBackend(cfg.Output.Backend)

	if cfg.Runtime.StatsAddr != "" {
		viewer.SetConfiguration(viewer.WithAddr(cfg.Runtime.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Printf("Stats server available at http://%s/debug/statsview", cfg.Runtime.StatsAddr)
	}

	var wg sync.WaitGroup

	if cfg.Runtime.HTTPAddr != "" {
		srv := monitor.NewServer(renderer, time.Duration(cfg.Runtime.StatusInterval*float64(time.Second)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.ListenAndServe(ctx, cfg.Runtime.HTTPAddr); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Monitor stopped: %v", err)
				stop()
			}
		}()
	}

	if cfg.Panel.Painter == config.PainterImage && cfg.Panel.Text != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scrollText(ctx, m, cfg.Panel.Text)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		opts := rt.Options{CPU: cfg.Runtime.CPU, LockMemory: cfg.Runtime.LockMemory}
		if err := rt.Prepare(opts); err != nil {
			log.Printf("Realtime setup incomplete: %v", err)
		}
		defer rt.Release(opts)

		if err := renderer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Renderer stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	wg.Wait()

	st := renderer.Status()
	log.Printf("Ran %d ticks, %d resets, %d sink errors", st.Ticks, st.Resets, st.SinkErrors)
}

// loadConfig reads the configuration file, if any, and applies the flags
// given on the command line on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "latency":
			cfg.Panel.Latency = *latency
		case "painter":
			cfg.Panel.Painter = *painterArg
		case "backend":
			cfg.Output.Backend = *backend
		case "http":
			cfg.Runtime.HTTPAddr = *httpAddr
		case "stats":
			cfg.Runtime.StatsAddr = *statsAddr
		case "text":
			cfg.Panel.Text = *text
		case "image":
			cfg.Panel.Image = *imagePath
		case "svg":
			cfg.Panel.SVG = *svgPath
		}
	})

	return cfg, cfg.Validate()
}

func choosePainter(cfg *types.PanelConfig, m *matrix.Matrix) panel.Painter {
	switch cfg.Painter {
	case config.PainterAddress:
		return painter.AddressTest
	case config.PainterSolid:
		return painter.Solid(panel.White)
	}
	return painter.NewImage(m, cfg.Tracer)
}

// loadContent fills the framebuffer from the configured sources. Later
// sources draw over earlier ones.
func loadContent(m *matrix.Matrix, cfg *types.PanelConfig) error {
	if cfg.Seed != 0 {
		if err := m.Seed(cfg.Seed); err != nil {
			return err
		}
	}
	if cfg.Image != "" {
		f, err := os.Open(cfg.Image)
		if err != nil {
			return err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return err
		}
		if err := m.SetImage(img); err != nil {
			return err
		}
	}
	if cfg.SVG != "" {
		f, err := os.Open(cfg.SVG)
		if err != nil {
			return err
		}
		err = m.LoadSVG(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return m.Show()
}
