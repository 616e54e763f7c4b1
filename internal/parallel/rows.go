package parallel

// MinBandRows is the smallest band Rows hands to a worker.
const MinBandRows = 16

// Rows calls fn over consecutive bands [y0, y1) that together cover [0, n)
// exactly once, and waits for all of them. Bands run on the pool's workers
// when there is enough work; otherwise fn(0, n) runs on the caller. A nil
// pool always runs inline.
func (p *WorkerPool) Rows(n int, fn func(y0, y1 int)) {
	if n <= 0 {
		return
	}
	if p == nil || !p.IsRunning() || p.workers == 1 || n < 2*MinBandRows {
		fn(0, n)
		return
	}

	bands := min(p.workers*2, n/MinBandRows)
	size := (n + bands - 1) / bands

	work := make([]func(), 0, bands)
	for y0 := 0; y0 < n; y0 += size {
		y1 := min(y0+size, n)
		work = append(work, func() { fn(y0, y1) })
	}
	p.ExecuteAll(work)
}
