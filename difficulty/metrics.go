package difficulty

import "time"

// Metrics is the rolling performance window
// Success rate is always recomputed from the window, never stored
type Metrics struct {
	outcomes []bool // Ring storage, len == capacity once full
	next     int
	count    int

	streak        int
	longestStreak int

	reactionTotal time.Duration
	reactionCount int
}

func newMetrics(capacity int) Metrics {
	if capacity < 1 {
		capacity = 1
	}
	return Metrics{outcomes: make([]bool, capacity)}
}

// push appends an outcome, evicting the oldest beyond capacity
func (m *Metrics) push(success bool) {
	m.outcomes[m.next] = success
	m.next = (m.next + 1) % len(m.outcomes)
	if m.count < len(m.outcomes) {
		m.count++
	}
	if success {
		m.streak++
		if m.streak > m.longestStreak {
			m.longestStreak = m.streak
		}
	} else {
		m.streak = 0
	}
}

func (m *Metrics) addReaction(d time.Duration) {
	if d <= 0 {
		return
	}
	m.reactionTotal += d
	m.reactionCount++
}

func (m *Metrics) reset() {
	clear(m.outcomes)
	m.next, m.count = 0, 0
	m.streak, m.longestStreak = 0, 0
	m.reactionTotal, m.reactionCount = 0, 0
}

// Len returns the number of outcomes currently in the window
func (m *Metrics) Len() int { return m.count }

// Capacity returns the window size
func (m *Metrics) Capacity() int { return len(m.outcomes) }

// SuccessRate is the mean of the window; ok is false for an empty window
func (m *Metrics) SuccessRate() (rate float64, ok bool) {
	if m.count == 0 {
		return 0, false
	}
	successes := 0
	// Oldest entry sits at next when full, at 0 otherwise; order is irrelevant for the mean
	for i := 0; i < m.count; i++ {
		if m.outcomes[i] {
			successes++
		}
	}
	return float64(successes) / float64(m.count), true
}

// Streak returns the current consecutive success count
func (m *Metrics) Streak() int { return m.streak }

// LongestStreak returns the best streak since reset
func (m *Metrics) LongestStreak() int { return m.longestStreak }

// AverageReaction returns the mean recorded reaction time of dodges
func (m *Metrics) AverageReaction() time.Duration {
	if m.reactionCount == 0 {
		return 0
	}
	return m.reactionTotal / time.Duration(m.reactionCount)
}
