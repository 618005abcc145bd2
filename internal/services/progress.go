package services

import "sync/atomic"

// Progress is the completion percentage of one batch. The engine writes it
// and any number of readers may poll it concurrently.
type Progress struct {
	percent atomic.Int32
}

// NewProgress returns a progress cell at 0.
func NewProgress() *Progress {
	return &Progress{}
}

// Percent returns the current value in [0, 100].
func (p *Progress) Percent() int {
	if p == nil {
		return 0
	}
	return int(p.percent.Load())
}

// Set raises the value to percent, clamped to [0, 100]. Lower values are
// ignored so readers never observe progress going backwards.
func (p *Progress) Set(percent int) {
	if p == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	for {
		current := p.percent.Load()
		if int32(percent) <= current {
			return
		}
		if p.percent.CompareAndSwap(current, int32(percent)) {
			return
		}
	}
}

// Complete sets the value to 100.
func (p *Progress) Complete() {
	p.Set(100)
}
