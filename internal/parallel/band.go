package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.Y1 - b.Y0 }

// SplitRows cuts height rows into at most n bands of near-equal size.
// Earlier bands receive the remainder rows. Returns nil for an empty frame.
func SplitRows(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}
	n = min(n, height)

	bands := make([]Band, 0, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := base
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}

// ForEachBand splits height rows into bands and runs fn for each band on
// the pool, returning when every band is done.
func (p *WorkerPool) ForEachBand(height, bandsPerWorker int, fn func(Band)) {
	if bandsPerWorker <= 0 {
		bandsPerWorker = 1
	}
	bands := SplitRows(height, p.workers*bandsPerWorker)
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b) }
	}
	p.ExecuteAll(jobs)
}
