package panel

// Select is the protocol selector: the startup word while the handshake is
// running, the scan word once it is done. done only ever goes from false to
// true, so the output switches source exactly once per reset.
func Select(done bool, startup, scan Word) Word {
	if done {
		return scan
	}
	return startup
}
