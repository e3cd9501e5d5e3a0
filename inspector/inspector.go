// Package inspector draws the live tuning panel with raygui widgets.
package inspector

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning is the set of parameters the panel edits live. The game converts
// changed values into system and solver parameters after each frame.
type Tuning struct {
	PortalScalar     float32
	FadeoutDuration  float32
	ApproachFraction float32
	ShrinkFraction   float32
	ZoomMargin       float32
	FittingRate      float32
}

type slider struct {
	label    string
	min, max float32
	value    *float32
	format   string
}

// Panel is the tuning sidebar. Hidden by default; Toggle shows it.
type Panel struct {
	visible bool
	bounds  rl.Rectangle
}

// NewPanel creates a panel anchored to the right screen edge.
func NewPanel(screenW, screenH int32) *Panel {
	const width = 280
	return &Panel{
		bounds: rl.Rectangle{
			X:      float32(screenW - width - 10),
			Y:      10,
			Width:  width,
			Height: float32(screenH - 20),
		},
	}
}

// Toggle flips panel visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Draw renders the panel and edits the tuning in place. It reports
// whether any value changed this frame.
func (p *Panel) Draw(t *Tuning) bool {
	if !p.visible {
		return false
	}

	rl.DrawRectangleRec(p.bounds, rl.Fade(rl.Black, 0.6))
	x := p.bounds.X + 10
	y := p.bounds.Y + 10
	w := p.bounds.Width - 80

	rl.DrawText("Tuning", int32(x), int32(y), 20, rl.RayWhite)
	y += 30

	sliders := []slider{
		{"Portal scalar", 0.5, 8, &t.PortalScalar, "%.1f"},
		{"Fadeout (s)", 1, 30, &t.FadeoutDuration, "%.0f"},
		{"Approach fraction", 0.1, 1, &t.ApproachFraction, "%.2f"},
		{"Shrink fraction", 0.05, 0.5, &t.ShrinkFraction, "%.2f"},
		{"Zoom margin", 0, 0.5, &t.ZoomMargin, "%.2f"},
		{"Fitting rate", 0.02, 0.5, &t.FittingRate, "%.2f"},
	}

	changed := false
	for _, s := range sliders {
		rl.DrawText(s.label, int32(x), int32(y), 14, rl.LightGray)
		y += 18
		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: w, Height: 20},
			fmt.Sprintf(s.format, s.min), fmt.Sprintf(s.format, s.max),
			*s.value, s.min, s.max,
		)
		rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(x+w+10), int32(y+2), 16, rl.RayWhite)
		if next != *s.value {
			*s.value = next
			changed = true
		}
		y += 32
	}

	rl.DrawText("Z fit  H home  B overlay  Tab close", int32(x), int32(y+10), 12, rl.Gray)
	return changed
}
