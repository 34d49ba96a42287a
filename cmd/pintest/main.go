package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/config"
	"github.com/fkcurrie/fm6126-scan/internal/output"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON configuration file")
	backend := flag.String("backend", "", "Output backend: gpiocdev or periph")
	period := flag.Duration("period", time.Second, "Time each line is held high")
	loops := flag.Int("loops", 0, "Number of passes over all lines, 0 runs until interrupted")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	if *backend != "" {
		cfg.Output.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Starting HUB75 line test...")
	out, err := output.Open(cfg.Output)
	if err != nil {
		log.Fatalf("Failed to open output: %v", err)
	}
	defer out.Close()

	names := cfg.Output.Pins.Names()
	offsets := cfg.Output.Pins.Offsets()

	ticker := time.NewTicker(*period)
	defer ticker.Stop()

	for pass := 0; *loops == 0 || pass < *loops; pass++ {
		for bit := 0; bit < panel.WordBits; bit++ {
			w := panel.Unpack(1 << bit)
			if err := out.Write(w); err != nil {
				log.Printf("Failed to drive %s: %v", names[bit], err)
				continue
			}
			log.Printf("%-3s (GPIO%d) high", names[bit], offsets[bit])

			select {
			case <-ctx.Done():
				log.Println("Received shutdown signal")
				return
			case <-ticker.C:
			}
		}
	}
	log.Println("Line test complete")
}
