// Package panel implements the scan and timing engine for 64x64 HUB75 panels
// built from FM6126 shift-register drivers.
//
// The engine is a synchronous state machine. Every call to Driver.Tick
// advances all registers by one clock and returns the protocol Word that
// must be presented on the panel connector for that clock:
//
//	rgb0[3] | rgb1[3] | addr[5] | blank | latch | clock
//
// After reset the StartupSequencer shifts the two FM6126 configuration
// registers into the panel. Once it reports done, the ScanSequencer takes
// over the output for good and raster-scans the panel forever: 64 column
// shifts, a blank/latch/address update, 68 ticks per row, 32 rows per
// subframe and 256 subframes per frame.
//
// # Painters
//
// Pixel data comes from a Painter. Each tick the driver publishes the
// lookahead position, which leads the scan position by the configured
// latency (0, 1 or 2 ticks). The sample supplied on tick t is shifted out on
// tick t+latency, exactly when the scan position equals the lookahead
// position it was painted for:
//
//	d, err := panel.New(panel.Config{Latency: 1})
//	if err != nil {
//		return err
//	}
//	for {
//		w := d.Step(painter)
//		// present w on the connector
//	}
//
// A nil painter paints black. A painter that takes longer than the latency
// to decide has its late answer shifted out for the wrong pixel; the engine
// cannot detect this.
//
// The Driver is owned by one goroutine. It has no locks and never blocks.
package panel
