package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goroom/internal/ui"
	"github.com/philipparndt/goroom/version"
)

const (
	fontSize      = float32(18)
	titleFontSize = float32(24)
	lineHeight    = float32(26)
	panelPadding  = float32(20)
	closeSize     = float32(28)
)

var welcomeLines = []string{
	"Welcome to my room!",
	"",
	"Drag to look around, scroll to zoom.",
	"Click on things to see what they do.",
}

var popupLines = []string{
	"Portfolio",
	"",
	"Projects, experiments and things I made.",
	"Github and X links live on the desk.",
}

// panelBounds returns the panel box and its close button for the current
// screen size
func (app *App) panelBounds(p *ui.Panel) (box, closeButton rl.Rectangle) {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	lines := app.panelLines(p)
	width := float32(420)
	if width > screenWidth-40 {
		width = screenWidth - 40
	}
	height := panelPadding*2 + lineHeight*float32(len(lines))

	box = rl.Rectangle{
		X:      (screenWidth - width) / 2,
		Y:      (screenHeight - height) / 2,
		Width:  width,
		Height: height,
	}
	closeButton = rl.Rectangle{
		X:      box.X + box.Width - closeSize - 8,
		Y:      box.Y + 8,
		Width:  closeSize,
		Height: closeSize,
	}
	return box, closeButton
}

func (app *App) panelLines(p *ui.Panel) []string {
	switch p {
	case app.UI.overlay.Welcome:
		return welcomeLines
	case app.UI.overlay.Popup:
		return popupLines
	}
	return nil
}

// handlePanelClick toggles a panel whose close button is under pos. A
// click anywhere on a shown panel is swallowed so it does not reach the
// scene.
func (app *App) handlePanelClick(pos rl.Vector2) bool {
	overlay := app.UI.overlay
	for _, p := range []*ui.Panel{overlay.Popup, overlay.Welcome} {
		if !p.Visible {
			continue
		}
		box, closeButton := app.panelBounds(p)
		if rl.CheckCollisionPointRec(pos, closeButton) {
			p.Toggle()
			return true
		}
		if rl.CheckCollisionPointRec(pos, box) {
			return true
		}
	}
	return false
}

// drawUI draws the user interface
func (app *App) drawUI() {
	overlay := app.UI.overlay

	for _, p := range []*ui.Panel{overlay.Welcome, overlay.Popup} {
		if p.Drawn() {
			app.drawPanel(p)
		}
	}
	if overlay.Loading.Drawn() {
		app.drawLoading(overlay.Loading)
	}

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 24
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, 12, 1, rl.Gray)
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, 12, 1).X
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("FPS: %d", rl.GetFPS()), rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, 12, 1, rl.Gray)
}

func (app *App) drawPanel(p *ui.Panel) {
	alpha := float32(p.Opacity())
	box, closeButton := app.panelBounds(p)

	rl.DrawRectangleRounded(box, 0.08, 8, rl.Fade(rl.NewColor(250, 250, 252, 255), 0.95*alpha))
	rl.DrawRectangleRoundedLines(box, 0.08, 8, rl.Fade(rl.LightGray, alpha))

	y := box.Y + panelPadding
	for i, line := range app.panelLines(p) {
		size := fontSize
		if i == 0 {
			size = titleFontSize
		}
		rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: box.X + panelPadding, Y: y}, size, 1, rl.Fade(rl.DarkGray, alpha))
		y += lineHeight
	}

	hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), closeButton)
	closeColor := rl.Gray
	if hovered {
		closeColor = rl.Red
	}
	rl.DrawTextEx(app.UI.font, "x", rl.Vector2{X: closeButton.X + 8, Y: closeButton.Y + 2}, titleFontSize, 1, rl.Fade(closeColor, alpha))
}

// drawLoading shows a spinner until the scene arrives. A failed load keeps
// it on screen.
func (app *App) drawLoading(p *ui.Panel) {
	alpha := float32(p.Opacity())
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	elapsed := time.Since(app.Load.startTime).Seconds()
	spinnerChars := []string{"|", "/", "-", "\\"}
	text := fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[int(elapsed*10)%len(spinnerChars)], elapsed)

	textSize := rl.MeasureTextEx(app.UI.font, text, fontSize, 1)
	boxWidth := textSize.X + panelPadding*2
	boxHeight := textSize.Y + panelPadding
	box := rl.Rectangle{
		X:      (screenWidth - boxWidth) / 2,
		Y:      screenHeight - boxHeight - 40,
		Width:  boxWidth,
		Height: boxHeight,
	}

	rl.DrawRectangleRounded(box, 0.3, 8, rl.Fade(rl.NewColor(0, 0, 0, 255), 0.7*alpha))
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: box.X + panelPadding, Y: box.Y + panelPadding/2}, fontSize, 1, rl.Fade(rl.White, alpha))
}
