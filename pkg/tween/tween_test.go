package tween

import (
	"math"
	"testing"

	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
)

func runToEnd(t *testing.T, p *Player, dt float32) {
	t.Helper()
	for i := 0; p.Active() > 0; i++ {
		if i > 10000 {
			t.Fatal("timelines never finished")
		}
		p.Update(dt)
	}
}

func TestJumpReturnsToStart(t *testing.T) {
	n := scene.NewNode("Mug")
	n.Position = geometry.NewVector3(1, 0.73, -2)

	p := NewPlayer()
	p.Jump(n)

	peak := n.Position.Y
	for p.Active() > 0 {
		p.Update(1.0 / 60)
		peak = math.Max(peak, n.Position.Y)
	}

	if n.Position.Y != 0.73 {
		t.Errorf("Jump failed: expected y 0.73 after the sequence, got %v", n.Position.Y)
	}
	if math.Abs(peak-(0.73+JumpHeight)) > 1e-9 {
		t.Errorf("Jump failed: expected peak %v, got %v", 0.73+JumpHeight, peak)
	}
	if n.Position.X != 1 || n.Position.Z != -2 {
		t.Errorf("Jump must only touch y, got %v", n.Position)
	}
}

func TestJumpPeakAtPhaseBoundary(t *testing.T) {
	n := scene.NewNode("Book")

	tl := Jump(n)
	tl.Advance(JumpDuration)

	if n.Position.Y != JumpHeight {
		t.Errorf("expected y %v after the first phase, got %v", JumpHeight, n.Position.Y)
	}
	if tl.Done() {
		t.Error("timeline should still have the landing phase")
	}

	tl.Advance(JumpDuration)
	if n.Position.Y != 0 || !tl.Done() {
		t.Errorf("expected landing at 0, got %v (done=%v)", n.Position.Y, tl.Done())
	}
}

func TestJumpEaseOutRisesFast(t *testing.T) {
	n := scene.NewNode("Cactus")
	tl := Jump(n)
	tl.Advance(JumpDuration / 2)

	// OutCubic covers seven eighths of the distance in half the time
	if math.Abs(n.Position.Y-0.875*JumpHeight) > 1e-5 {
		t.Errorf("expected y %v at half time, got %v", 0.875*JumpHeight, n.Position.Y)
	}
}

func TestSpinEasesInSlowly(t *testing.T) {
	n := scene.NewNode("Chair")
	tl := Spin(n)
	tl.Advance(SpinDuration / 4)

	// InOutCubic at a quarter of the way: 4 * 0.25^3 = 1/16 of a turn
	want := 2 * math.Pi / 16
	if math.Abs(n.Rotation.Y-want) > 1e-5 {
		t.Errorf("expected rotation %v at quarter time, got %v", want, n.Rotation.Y)
	}
}

func TestSpinAddsFullTurn(t *testing.T) {
	n := scene.NewNode("Chair")
	n.Rotation.Y = 0.4
	want := n.Rotation.Y + 2*math.Pi

	p := NewPlayer()
	p.Spin(n)
	runToEnd(t, p, 1.0/60)

	if n.Rotation.Y != want {
		t.Errorf("Spin failed: expected %v, got %v", want, n.Rotation.Y)
	}
}

func TestOverflowCarriesIntoNextStep(t *testing.T) {
	n := scene.NewNode("Can1")
	tl := Jump(n)

	// One large step finishes the rise and lands part way into the fall
	tl.Advance(JumpDuration + 0.1)

	if tl.current != 1 {
		t.Fatalf("expected to be in the landing phase, at step %d", tl.current)
	}
	if n.Position.Y >= JumpHeight || n.Position.Y <= 0 {
		t.Errorf("expected y between 0 and %v, got %v", JumpHeight, n.Position.Y)
	}

	tl.Advance(10)
	if !tl.Done() || n.Position.Y != 0 {
		t.Errorf("expected finished at 0, got %v (done=%v)", n.Position.Y, tl.Done())
	}
}

func TestOverlappingTimelinesRunTogether(t *testing.T) {
	n := scene.NewNode("Chair")

	p := NewPlayer()
	p.Spin(n)
	p.Update(0.5)
	p.Spin(n)

	if p.Active() != 2 {
		t.Fatalf("expected 2 active timelines, got %d", p.Active())
	}

	runToEnd(t, p, 1.0/60)

	// The second spin was aimed at its trigger-time rotation plus a turn, so
	// the final rotation lies beyond a single turn.
	if n.Rotation.Y <= 2*math.Pi {
		t.Errorf("expected rotation past one turn, got %v", n.Rotation.Y)
	}
}

func TestPlayerDropsFinished(t *testing.T) {
	p := NewPlayer()
	p.Jump(scene.NewNode("a"))
	p.Spin(scene.NewNode("b"))

	p.Update(2 * JumpDuration)
	if p.Active() != 1 {
		t.Errorf("expected only the spin left, got %d", p.Active())
	}
	p.Update(SpinDuration)
	if p.Active() != 0 {
		t.Errorf("expected no timelines left, got %d", p.Active())
	}
}
