// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar implements progress bar functionality that must be
// manually managed: Increment should be called once per completed
// iteration, and Display whenever an updated bar should be printed to
// the screen.
//
// ProgressBar does not use concurrency.
type ProgressBar struct {
	width       float64
	maxProgress float64
	progress    float64
	bar         strings.Builder
	startTime   time.Time
}

// New returns a new ProgressBar that is width characters wide and
// reaches 100% after max Increment() calls
func New(width, max int) *ProgressBar {
	return &ProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		progress:    0,
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.progress < p.maxProgress {
		p.progress++
	}
}

// Display prints the progress bar to the screen, overwriting the bar
// printed by the previous call
func (p *ProgressBar) Display() {
	p.bar.Reset()
	p.bar.Write([]byte("|"))

	currentProg := p.progress / p.maxProgress * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.Write([]byte("█"))
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.Write([]byte(" "))
	}
	p.bar.Write([]byte(fmt.Sprintf("| [%v/%v | elapsed: %v]",
		int(p.progress), int(p.maxProgress),
		time.Since(p.startTime).Truncate(time.Second))))

	fmt.Printf("\n\033[1A\033[K%v", p.bar.String())
}
