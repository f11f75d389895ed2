// Package ui holds the visibility state of the on-screen panels.
package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring settings for panel fades
const (
	fadeFrequency = 8.0
	fadeDamping   = 1.0
	settleEpsilon = 1e-3
)

// Panel is a toggleable overlay. Visible is the logical state; Opacity
// follows it smoothly for drawing.
type Panel struct {
	Title   string
	Visible bool

	opacity  float64
	velocity float64
	spring   harmonica.Spring
}

// NewPanel creates a panel that starts fully shown or hidden
func NewPanel(title string, visible bool, fps int) *Panel {
	p := &Panel{
		Title:   title,
		Visible: visible,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), fadeFrequency, fadeDamping),
	}
	if visible {
		p.opacity = 1
	}
	return p
}

func (p *Panel) Toggle() { p.Visible = !p.Visible }
func (p *Panel) Hide()   { p.Visible = false }

// Update steps the fade spring by one frame
func (p *Panel) Update() {
	target := 0.0
	if p.Visible {
		target = 1
	}

	p.opacity, p.velocity = p.spring.Update(p.opacity, p.velocity, target)
	if math.Abs(p.opacity-target) < settleEpsilon && math.Abs(p.velocity) < settleEpsilon {
		p.opacity, p.velocity = target, 0
	}
}

// Opacity is the current fade level clamped to [0, 1]
func (p *Panel) Opacity() float64 {
	return math.Max(0, math.Min(1, p.opacity))
}

// Drawn reports whether the panel needs drawing at all
func (p *Panel) Drawn() bool {
	return p.Visible || p.Opacity() > 0
}

// Overlay groups the viewer's panels
type Overlay struct {
	Popup   *Panel
	Welcome *Panel
	Loading *Panel
}

// NewOverlay returns the startup layout: welcome and loading shown, popup
// hidden
func NewOverlay(fps int) *Overlay {
	return &Overlay{
		Popup:   NewPanel("Portfolio", false, fps),
		Welcome: NewPanel("Welcome", true, fps),
		Loading: NewPanel("Loading", true, fps),
	}
}

// TogglePopup flips the portfolio popup
func (o *Overlay) TogglePopup() {
	o.Popup.Toggle()
}

// Loaded hides the loading indicator
func (o *Overlay) Loaded() {
	o.Loading.Hide()
}

// Panels returns every panel in draw order
func (o *Overlay) Panels() []*Panel {
	return []*Panel{o.Welcome, o.Popup, o.Loading}
}

// Update advances all fades by one frame
func (o *Overlay) Update() {
	for _, p := range o.Panels() {
		p.Update()
	}
}
