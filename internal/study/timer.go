// ABOUTME: Study stopwatch counting whole seconds while running
// ABOUTME: Uses a generation counter so only one tick source ever advances it

package study

import "fmt"

// Timer is a start/stop stopwatch driven by external one-second ticks.
// It is not safe for concurrent use; the owning model serialises access.
type Timer struct {
	running bool
	elapsed int
	gen     int
}

// Start begins counting. It returns the generation that ticks must carry
// and whether a new tick source should be scheduled. Starting a running
// timer is a no-op.
func (t *Timer) Start() (gen int, started bool) {
	if t.running {
		return t.gen, false
	}
	t.running = true
	t.gen++
	return t.gen, true
}

// Stop halts counting and retires the current tick generation.
// Elapsed time is kept so a later Start resumes from it.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	t.gen++
}

// Tick advances the timer by one second when gen is current.
// It reports whether the tick was accepted and the source should continue.
func (t *Timer) Tick(gen int) bool {
	if !t.running || gen != t.gen {
		return false
	}
	t.elapsed++
	return true
}

// Running reports whether the timer is counting
func (t *Timer) Running() bool { return t.running }

// Elapsed returns the counted seconds
func (t *Timer) Elapsed() int { return t.elapsed }

// Display returns the label shown to the user
func (t *Timer) Display() string {
	return "Timer: " + Format(t.elapsed)
}

// Format renders seconds as MM:SS. Minutes are not capped at 59.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
