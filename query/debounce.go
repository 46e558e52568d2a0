package query

import "time"

// DebounceDelay is how long search input must stay idle before the pending
// text commits to the filter set.
const DebounceDelay = 500 * time.Millisecond

// Debouncer coalesces rapid input into a single commit. Each Schedule call
// supersedes any pending one by advancing the generation; a timer that fires
// with a stale generation is simply ignored, so only the latest scheduled
// commit ever executes. The caller owns the actual timer (the TUI uses
// tea.Tick), which keeps this type pure and single-threaded.
type Debouncer struct {
	generation int
	delay      time.Duration
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule registers a new pending commit and returns its generation.
// Any previously pending generation is cancelled by this call.
func (d *Debouncer) Schedule() int {
	d.generation++
	return d.generation
}

// Cancel invalidates any pending commit without scheduling a new one.
func (d *Debouncer) Cancel() {
	d.generation++
}

// Fire reports whether the given generation is still the live one. A true
// result consumes the pending commit.
func (d *Debouncer) Fire(generation int) bool {
	return generation == d.generation
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Generation orders in-flight fetches so that only the latest request's
// result is applied. A response resolved under a superseded generation must
// be discarded by the caller.
type Generation struct {
	current int
}

// Next starts a new request and supersedes all earlier ones.
func (g *Generation) Next() int {
	g.current++
	return g.current
}

// IsCurrent reports whether a response from the given request may still be
// applied.
func (g *Generation) IsCurrent(generation int) bool {
	return generation == g.current
}
