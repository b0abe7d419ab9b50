package arena

// TimerResult is the outcome of one spawn timer tick.
type TimerResult struct {
	Fired     bool    // Timer expired; the caller spawns and clears the timer
	Remaining float64 // Seconds left when not fired
}

// Pending returns a result with the given time remaining.
func Pending(remaining float64) TimerResult {
	return TimerResult{Remaining: remaining}
}

// Fire returns an expired result.
func Fire() TimerResult {
	return TimerResult{Fired: true}
}

// Tick advances a countdown by dt seconds.
// It has no side effects: the caller stores Remaining or acts on Fired.
// Callers gate pauses by not ticking at all; a zero dt leaves the timer
// where it is.
func Tick(timer, dt float64) TimerResult {
	timer -= dt
	if timer <= 0 {
		return Fire()
	}
	return Pending(timer)
}
