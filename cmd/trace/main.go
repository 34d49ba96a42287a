package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/monitor"
	"github.com/fkcurrie/fm6126-scan/pkg/painter"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
	"github.com/fkcurrie/fm6126-scan/pkg/panelsim"
	"github.com/fkcurrie/fm6126-scan/pkg/sink"
)

func main() {
	latency := flag.Int("latency", 1, "Painter latency in ticks (0-2)")
	painterArg := flag.String("painter", "address", "Painter: address, banks, solid or noise")
	subframes := flag.Int("subframes", 1, "Number of subframes to simulate after startup")
	words := flag.Int("words", 0, "Print the first n words")
	ddr := flag.Bool("ddr", false, "Print words in the double data rate layout")
	ascii := flag.Bool("ascii", true, "Render the simulated panel as text")
	pngPath := flag.String("png", "", "Write the simulated panel to a PNG file")
	follow := flag.String("follow", "", "Follow the status stream of a running service, e.g. ws://pi:8080/ws")
	flag.Parse()

	if *follow != "" {
		followStatus(*follow)
		return
	}

	p, err := choosePainter(*painterArg)
	if err != nil {
		log.Fatal(err)
	}
	d, err := panel.New(panel.Config{Latency: *latency})
	if err != nil {
		log.Fatalf("Failed to create driver: %v", err)
	}

	sim := panelsim.New()
	rec := &sink.Recorder{Limit: *words}
	out := sink.Tee(sim, rec)

	// Run through startup and the first row so the panel shows only scanned
	// data, then integrate.
	warmup := panel.StartupTicks + 2 + *latency + panel.RowTicks
	for i := 0; i < warmup; i++ {
		out.Write(d.Step(p))
	}
	sim.ClearEnergy()
	for i := 0; i < *subframes*panel.SubframeTicks; i++ {
		out.Write(d.Step(p))
	}

	for i, w := range rec.Words {
		if *ddr {
			fmt.Printf("%6d %05x\n", i, sink.PackDDR(w))
		} else {
			fmt.Printf("%6d %04x %s\n", i, w.Pack(), w)
		}
	}

	if *ascii {
		if err := sim.Render(os.Stdout); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
	}
	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *pngPath, err)
		}
		if err := png.Encode(f, sim.Image()); err != nil {
			log.Fatalf("Failed to encode png: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to write %s: %v", *pngPath, err)
		}
	}
	log.Printf("Simulated %d ticks, ended at %v in %v", d.Ticks(), d.Position(), d.State())
}

func choosePainter(name string) (panel.Painter, error) {
	switch name {
	case "address":
		return painter.AddressTest, nil
	case "banks":
		return painter.Banks{Top: painter.Solid(panel.Red), Bottom: painter.Solid(panel.Blue)}, nil
	case "solid":
		return painter.Solid(panel.White), nil
	case "noise":
		rng := painter.NewXORShift(uint64(time.Now().UnixNano()))
		return panel.PainterFunc(func(panel.Coord) panel.RGB {
			return panel.RGB(rng.Uint8()) & panel.White
		}), nil
	}
	return nil, fmt.Errorf("unknown painter %q", name)
}

func followStatus(url string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := monitor.NewClient(url, 0)
	if err := client.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-client.Status():
			if !ok {
				log.Println("Connection closed")
				return
			}
			fmt.Println(monitor.FormatStatus(st))
		}
	}
}
