package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/dodger/core"
	"github.com/lixenwraith/dodger/parameter"
	"github.com/lixenwraith/dodger/powerup"
	"github.com/lixenwraith/dodger/sim"
	"github.com/lixenwraith/dodger/status"
	"github.com/lixenwraith/dodger/system"
)

// Overlay carries per-frame presentation state that lives outside the run
type Overlay struct {
	ShakeX, ShakeY int
	Popups         []system.Popup
	Metrics        []status.Metric // Shown on the status row when non-nil
	Toast          string          // Short message, e.g. an unlocked achievement
}

// TerminalRenderer draws a sim.Snapshot onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	layout Layout
	shake  core.Vec2 // Shake offset in cells
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// Layout returns the layout of the last frame
func (r *TerminalRenderer) Layout() Layout { return r.layout }

// RenderFrame renders the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(snap *sim.Snapshot, ov Overlay) {
	w, h := r.screen.Size()
	r.layout = NewLayout(w, h)
	r.shake = core.Vec2{X: float64(ov.ShakeX), Y: float64(ov.ShakeY)}

	r.screen.SetStyle(fg(colorHUD))
	r.screen.Clear()

	for _, e := range snap.Entities() {
		switch e.Kind {
		case sim.KindPlayer:
			r.drawPlayer(snap, e)
		case sim.KindObstacle:
			r.drawObstacle(e)
		case sim.KindCollectible:
			r.drawCollectible(e)
		case sim.KindProjectile:
			r.drawProjectile(e)
		case sim.KindElite:
			r.drawElite(e)
		}
	}

	for _, p := range ov.Popups {
		r.drawPopup(p)
	}

	r.drawHUD(snap)
	r.drawStatus(snap, ov)

	switch snap.State {
	case sim.StatePaused:
		r.drawBanner("PAUSED", "p to resume, q to quit", colorHUD)
	case sim.StateGameOver:
		sub := fmt.Sprintf("score %d  best combo %d  r to retry", snap.Score, snap.MaxCombo)
		r.drawBanner("GAME OVER", sub, colorWarning)
	case sim.StateIdle:
		r.drawBanner("DODGER", "press space to start", colorHUD)
	}

	r.screen.Show()
}

// set draws one field cell with the shake offset, clipped to the field
func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	x += int(r.shake.X)
	y += int(r.shake.Y)
	if !r.layout.InField(x, y) {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *TerminalRenderer) drawPlayer(snap *sim.Snapshot, e sim.Entity) {
	sk := snap.Skin
	x0, y0, x1, y1 := r.layout.Span(e.Pos, e.Size)

	// Glow pulses with intensity, flickers during post-hit grace
	glow := sk.Blend(0.5 + 0.5*snap.Intensity)
	body := sk.Core
	if snap.Grace > 0 && (snap.Frame/4)%2 == 0 {
		body = fade(body, 0.6)
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, '█', fg(body))
		}
	}
	r.set(x0-1, (y0+y1)/2, '▐', fg(fade(glow, 0.3)))
	r.set(x1+1, (y0+y1)/2, '▌', fg(glow))

	if shieldUp(snap.PowerUps) {
		st := fg(hexOr(mustDef(powerup.Shield).Color, colorHUD))
		r.set(x0-1, y0-1, '╭', st)
		r.set(x1+1, y0-1, '╮', st)
		r.set(x0-1, y1+1, '╰', st)
		r.set(x1+1, y1+1, '╯', st)
	}
}

func (r *TerminalRenderer) drawObstacle(e sim.Entity) {
	x0, y0, x1, y1 := r.layout.Span(e.Pos, e.Size)
	st := fg(colorObstacle)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, '▓', st)
		}
	}
}

func (r *TerminalRenderer) drawCollectible(e sim.Entity) {
	x, y := r.layout.Cell(e.Pos)
	switch e.Variant {
	case "coin":
		r.set(x, y, '●', fg(colorCoin))
	case "energy":
		r.set(x, y, '✦', fg(colorEnergy))
	default:
		t, ok := powerup.ParseType(e.Variant)
		if !ok {
			r.set(x, y, '?', fg(colorDim))
			return
		}
		def := mustDef(t)
		r.set(x, y, def.Glyph, fg(hexOr(def.Color, colorHUD)).Bold(true))
	}
}

func (r *TerminalRenderer) drawProjectile(e sim.Entity) {
	n := len(e.Trail)
	for i, p := range e.Trail {
		x, y := r.layout.Cell(p)
		r.set(x, y, '·', fg(fade(colorProjectile, 1-float64(i+1)/float64(n+1))))
	}
	if !e.Alive {
		return
	}
	x, y := r.layout.Cell(e.Pos)
	glyph := '•'
	if e.Size.X > 2*parameter.ProjectileRadius {
		glyph = '◉' // Charged
	}
	r.set(x, y, glyph, fg(colorProjectile).Bold(true))
}

func (r *TerminalRenderer) drawElite(e sim.Entity) {
	c, ok := eliteColors[e.Variant]
	if !ok {
		c = colorWarning
	}
	if !e.Alive {
		c = fade(c, e.Fade)
	}
	st := fg(c)

	x0, y0, x1, y1 := r.layout.Span(e.Pos, e.Size)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := '▒'
			if !e.Alive {
				ch = '░'
			}
			r.set(x, y, ch, st)
		}
	}
	if e.Alive && e.Variant == "sentinel" {
		for y := y0; y <= y1; y++ {
			r.set(x0, y, '▌', st.Bold(true))
		}
	}
}

func (r *TerminalRenderer) drawPopup(p system.Popup) {
	x, y := r.layout.Cell(core.Vec2{X: p.X, Y: p.Y})
	y -= int(p.Progress() * 3)
	st := fg(fade(colorPopup, p.Progress()))
	for _, ch := range p.Text {
		r.set(x, y, ch, st)
		x += runewidth.RuneWidth(ch)
	}
}

// drawText writes s at x,y without shake or clipping beyond the screen, returns the end column
func (r *TerminalRenderer) drawText(x, y int, s string, st tcell.Style) int {
	for _, ch := range s {
		if x >= r.layout.Width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, st)
		x += runewidth.RuneWidth(ch)
	}
	return x
}

func (r *TerminalRenderer) drawHUD(snap *sim.Snapshot) {
	st := fg(colorHUD).Bold(true)
	left := fmt.Sprintf(" SCORE %d  COMBO x%d", snap.Score, snap.Combo)
	if snap.Lives > 0 || snap.Mode.Lives > 0 {
		left += "  " + strings.Repeat("♥", max(0, snap.Lives))
	}
	if snap.Remaining > 0 || snap.Mode.Duration > 0 {
		left += fmt.Sprintf("  %s", snap.Remaining.Round(100*time.Millisecond))
	}
	x := r.drawText(0, 0, left, st)

	for _, inst := range snap.PowerUps {
		def := mustDef(inst.Type)
		label := fmt.Sprintf(" %c%.1fs", def.Glyph, inst.Remaining.Seconds())
		x = r.drawText(x, 0, label, fg(hexOr(def.Color, colorHUD)))
	}

	right := fmt.Sprintf("%s  %s ", snap.Mode.Name(), strings.ToUpper(snap.Difficulty.Tier.String()))
	rw := runewidth.StringWidth(right)
	if r.layout.Width-rw > x {
		r.drawText(r.layout.Width-rw, 0, right, fg(colorDim))
	}
}

func (r *TerminalRenderer) drawStatus(snap *sim.Snapshot, ov Overlay) {
	y := r.layout.Height - 1
	if y <= 0 {
		return
	}
	var line string
	switch {
	case ov.Toast != "":
		line = " " + ov.Toast
	case ov.Metrics != nil:
		parts := make([]string, 0, len(ov.Metrics))
		for _, m := range ov.Metrics {
			parts = append(parts, m.Key+"="+m.Value)
		}
		line = " " + strings.Join(parts, " ")
	default:
		line = fmt.Sprintf(" tokens %d  energy %d  kills %d", snap.Tokens, snap.Energy, snap.Kills)
	}
	line = runewidth.Truncate(line, r.layout.Width, "…")
	r.drawText(0, y, line, fg(colorDim))
}

// drawBanner centers a title and subtitle over the field
func (r *TerminalRenderer) drawBanner(title, sub string, c colorful.Color) {
	cy := r.layout.FieldY + r.layout.FieldH/2
	for i, s := range []string{title, sub} {
		s = runewidth.Truncate(s, r.layout.Width, "…")
		x := (r.layout.Width - runewidth.StringWidth(s)) / 2
		st := fg(c)
		if i == 0 {
			st = st.Bold(true)
		}
		r.drawText(max(0, x), cy+i, s, st)
	}
}

func shieldUp(active []powerup.Instance) bool {
	for _, inst := range active {
		if inst.Type == powerup.Shield {
			return true
		}
	}
	return false
}

func mustDef(t powerup.Type) powerup.Definition {
	def, _ := powerup.Lookup(t)
	return def
}
