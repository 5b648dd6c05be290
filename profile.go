package softgl

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProfileEntry is the accumulated cost of one opcode.
type ProfileEntry struct {
	Op    Opcode
	Calls uint64
	Time  time.Duration
}

// profiler wraps command dispatch, timing every call.
type profiler struct {
	entries [opCount]ProfileEntry
	total   time.Duration
}

func (p *profiler) run(c *Context, cmd Command) {
	start := time.Now()
	cmd.apply(c)
	d := time.Since(start)

	e := &p.entries[cmd.Opcode()]
	e.Calls++
	e.Time += d
	p.total += d
}

// Profile returns the opcodes called so far, in opcode order, with their
// call counts and cumulative time. It returns nil unless the context was
// created with WithProfiling.
func (c *Context) Profile() []ProfileEntry {
	if c.prof == nil {
		return nil
	}
	var out []ProfileEntry
	for op, e := range c.prof.entries {
		if e.Calls == 0 {
			continue
		}
		e.Op = Opcode(op)
		out = append(out, e)
	}
	return out
}

// ResetProfile zeroes the profiling counters.
func (c *Context) ResetProfile() {
	if c.prof != nil {
		*c.prof = profiler{}
	}
}

// WriteProfile writes a human-readable profiling report to w: one line per
// called opcode with calls, milliseconds and share of the total, then the
// total time.
func (c *Context) WriteProfile(w io.Writer) error {
	p := message.NewPrinter(language.English)
	if c.prof == nil {
		_, err := p.Fprintln(w, "softgl: profiling disabled")
		return err
	}

	if _, err := p.Fprintln(w, "-- softgl profiling results --"); err != nil {
		return err
	}
	total := c.prof.total
	for _, e := range c.Profile() {
		pct := 0.0
		if total > 0 {
			pct = float64(e.Time) * 100 / float64(total)
		}
		ms := float64(e.Time) / float64(time.Millisecond)
		if _, err := p.Fprintf(w, "%-20s %12d calls %12.2f ms %6.2f%%\n", e.Op, e.Calls, ms, pct); err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "Total time: %.2f ms\n", float64(total)/float64(time.Millisecond))
	return err
}
