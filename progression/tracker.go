package progression

import (
	"errors"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dodger/event"
	"github.com/lixenwraith/dodger/status"
)

// ProfileKey is the store key of the persisted profile
const ProfileKey = "profile"

// UnlockListener receives achievements as they unlock
type UnlockListener interface {
	OnUnlock(a Achievement)
}

// UnlockFunc adapts a function to UnlockListener
type UnlockFunc func(a Achievement)

func (f UnlockFunc) OnUnlock(a Achievement) { f(a) }

// Tracker accumulates lifetime stats from game events and unlocks achievements
// It saves the profile after every run
type Tracker struct {
	mu       sync.Mutex
	profile  Profile
	store    Store
	listener UnlockListener
	now      func() time.Time

	statUnlocked *atomic.Int64
	statRuns     *atomic.Int64
}

// NewTracker loads the profile from store; missing or malformed data starts fresh
func NewTracker(store Store, listener UnlockListener, reg *status.Registry) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	t := &Tracker{
		profile:  newProfile(),
		store:    store,
		listener: listener,
		now:      time.Now,
	}
	if reg != nil {
		t.statUnlocked = reg.Ints.Get("progression.unlocked")
		t.statRuns = reg.Ints.Get("progression.runs")
	} else {
		t.statUnlocked = new(atomic.Int64)
		t.statRuns = new(atomic.Int64)
	}

	var p Profile
	switch err := store.Load(ProfileKey, &p); {
	case err == nil:
		if p.Unlocked == nil {
			p.Unlocked = make(map[string]time.Time)
		}
		if p.Stats.ModeBest == nil {
			p.Stats.ModeBest = make(map[string]int64)
		}
		t.profile = p
	case errors.Is(err, ErrNotFound):
	default:
		log.Printf("progression: %v, starting fresh profile", err)
	}
	t.publish()
	return t
}

// EventTypes implements event.Handler
func (t *Tracker) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventDodge,
		event.EventFail,
		event.EventCollect,
		event.EventEliteKilled,
		event.EventComboChanged,
		event.EventGameOver,
	}
}

// HandleEvent implements event.Handler
func (t *Tracker) HandleEvent(ev event.GameEvent) {
	t.mu.Lock()
	s := &t.profile.Stats
	save := false

	switch ev.Type {
	case event.EventDodge:
		s.Dodges++
		if p, ok := ev.Payload.(*event.DodgePayload); ok {
			s.LongestCombo = max(s.LongestCombo, p.Combo)
		}
	case event.EventFail:
		s.Fails++
	case event.EventCollect:
		s.Collects++
	case event.EventEliteKilled:
		s.Kills++
		if p, ok := ev.Payload.(*event.ElitePayload); ok && p.Kind == "titan" {
			s.TitanKills++
		}
	case event.EventComboChanged:
		if p, ok := ev.Payload.(*event.ComboPayload); ok {
			s.LongestCombo = max(s.LongestCombo, p.Combo)
		}
	case event.EventGameOver:
		p, ok := ev.Payload.(*event.GameOverPayload)
		if !ok {
			break
		}
		s.Runs++
		s.TotalScore += p.Score
		s.BestScore = max(s.BestScore, p.Score)
		if p.Mode != "" {
			s.ModeBest[p.Mode] = max(s.ModeBest[p.Mode], p.Score)
		}
		s.LongestCombo = max(s.LongestCombo, p.MaxCombo)
		s.PlayTime += p.Duration
		s.Tokens += p.Tokens
		s.Energy += p.Energy
		save = true
	}

	unlocked := t.evaluate()
	if len(unlocked) > 0 {
		save = true
	}
	var snapshot Profile
	if save {
		snapshot = t.copyProfile()
	}
	t.publish()
	t.mu.Unlock()

	if save {
		if err := t.store.Save(ProfileKey, snapshot); err != nil {
			log.Printf("progression: %v", err)
		}
	}
	if t.listener != nil {
		for _, a := range unlocked {
			t.listener.OnUnlock(a)
		}
	}
}

// evaluate unlocks every newly met achievement; caller holds mu
func (t *Tracker) evaluate() []Achievement {
	var fresh []Achievement
	for _, a := range catalog {
		if _, done := t.profile.Unlocked[a.ID]; done {
			continue
		}
		if a.Met(&t.profile.Stats) {
			t.profile.Unlocked[a.ID] = t.now()
			fresh = append(fresh, a)
		}
	}
	return fresh
}

func (t *Tracker) publish() {
	t.statUnlocked.Store(int64(len(t.profile.Unlocked)))
	t.statRuns.Store(int64(t.profile.Stats.Runs))
}

// copyProfile deep-copies the profile; caller holds mu
func (t *Tracker) copyProfile() Profile {
	p := Profile{Stats: t.profile.Stats.clone(), Unlocked: make(map[string]time.Time, len(t.profile.Unlocked))}
	for k, v := range t.profile.Unlocked {
		p.Unlocked[k] = v
	}
	return p
}

// Stats returns a copy of the lifetime stats
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.Stats.clone()
}

// ModeBest returns the best score recorded for a mode name
func (t *Tracker) ModeBest(mode string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.Stats.ModeBest[mode]
}

// IsUnlocked reports whether the achievement is unlocked
func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.profile.Unlocked[id]
	return ok
}

// Unlocked returns unlocked achievement ids in catalog order
func (t *Tracker) Unlocked() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ids []string
	for _, a := range catalog {
		if _, ok := t.profile.Unlocked[a.ID]; ok {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Cosmetics returns the skin ids granted by unlocked achievements, sorted
func (t *Tracker) Cosmetics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var skins []string
	for _, a := range catalog {
		if _, ok := t.profile.Unlocked[a.ID]; ok && a.Reward != "" {
			skins = append(skins, a.Reward)
		}
	}
	sort.Strings(skins)
	return skins
}

// Save persists the current profile
func (t *Tracker) Save() error {
	t.mu.Lock()
	p := t.copyProfile()
	t.mu.Unlock()
	return t.store.Save(ProfileKey, p)
}
