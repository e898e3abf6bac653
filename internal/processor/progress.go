package processor

import (
	"fmt"
	"io"
)

// progress prints "N%" every `every` items of a stage.
type progress struct {
	out   io.Writer
	every int
	total int
	count int
}

func newProgress(out io.Writer, every, total int) *progress {
	return &progress{out: out, every: every, total: total}
}

// Step records one processed item.
func (p *progress) Step() {
	p.count++
	if p.every <= 0 || p.total == 0 || p.count%p.every != 0 {
		return
	}
	fmt.Fprintf(p.out, "%d%%\n", p.count*100/p.total)
}
