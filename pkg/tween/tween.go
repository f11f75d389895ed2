// Package tween plays short keyframed animations on scene node transforms.
package tween

import (
	"math"

	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	JumpHeight   = 0.5
	JumpDuration = 0.3 // seconds per phase
	SpinDuration = 1.0
)

// Property is a single float channel of a node
type Property struct {
	Get func() float64
	Set func(float64)
}

// PositionY addresses a node's local vertical position
func PositionY(n *scene.Node) Property {
	return Property{
		Get: func() float64 { return n.Position.Y },
		Set: func(v float64) { n.Position.Y = v },
	}
}

// RotationY addresses a node's rotation about its vertical axis
func RotationY(n *scene.Node) Property {
	return Property{
		Get: func() float64 { return n.Rotation.Y },
		Set: func(v float64) { n.Rotation.Y = v },
	}
}

// Step animates a property towards To. The start value is read when the
// step begins, not when the timeline is created.
type Step struct {
	Property Property
	To       float64
	Duration float32
	Easing   ease.TweenFunc

	from     float64
	progress *gween.Tween
}

// Timeline runs its steps back to back
type Timeline struct {
	Target *scene.Node
	Steps  []*Step

	current int
}

// NewTimeline creates a timeline for target
func NewTimeline(target *scene.Node, steps ...*Step) *Timeline {
	return &Timeline{Target: target, Steps: steps}
}

// Jump lifts the node by JumpHeight and bounces it back to where it was
func Jump(n *scene.Node) *Timeline {
	y := PositionY(n)
	start := y.Get()
	return NewTimeline(n,
		&Step{Property: y, To: start + JumpHeight, Duration: JumpDuration, Easing: ease.OutCubic},
		&Step{Property: y, To: start, Duration: JumpDuration, Easing: ease.OutBounce},
	)
}

// Spin turns the node a full revolution about its vertical axis
func Spin(n *scene.Node) *Timeline {
	r := RotationY(n)
	return NewTimeline(n,
		&Step{Property: r, To: r.Get() + 2*math.Pi, Duration: SpinDuration, Easing: ease.InOutCubic},
	)
}

// Done reports whether every step has finished
func (tl *Timeline) Done() bool {
	return tl.current >= len(tl.Steps)
}

// Advance moves the timeline forward by dt seconds. Time left over when a
// step finishes is carried into the next one.
func (tl *Timeline) Advance(dt float32) {
	for !tl.Done() {
		step := tl.Steps[tl.current]
		if step.progress == nil {
			step.from = step.Property.Get()
			step.progress = gween.New(0, 1, step.Duration, step.Easing)
		}

		t, finished := step.progress.Update(dt)
		if !finished {
			step.Property.Set(step.from + (step.To-step.from)*float64(t))
			return
		}

		step.Property.Set(step.To)
		tl.current++
		dt = step.progress.Overflow
		if dt <= 0 {
			return
		}
	}
}

// Player advances every running timeline once per frame. Timelines on the
// same node run side by side; nothing is queued or cancelled.
type Player struct {
	timelines []*Timeline
}

// NewPlayer creates an empty player
func NewPlayer() *Player {
	return &Player{}
}

// Play starts tl on the next Update
func (p *Player) Play(tl *Timeline) {
	p.timelines = append(p.timelines, tl)
}

// Jump starts a jump on n
func (p *Player) Jump(n *scene.Node) {
	p.Play(Jump(n))
}

// Spin starts a spin on n
func (p *Player) Spin(n *scene.Node) {
	p.Play(Spin(n))
}

// Update advances all timelines by dt seconds and drops finished ones
func (p *Player) Update(dt float32) {
	running := p.timelines[:0]
	for _, tl := range p.timelines {
		tl.Advance(dt)
		if !tl.Done() {
			running = append(running, tl)
		}
	}
	for i := len(running); i < len(p.timelines); i++ {
		p.timelines[i] = nil
	}
	p.timelines = running
}

// Active returns the number of timelines still running
func (p *Player) Active() int {
	return len(p.timelines)
}
