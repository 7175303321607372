package view

import (
	"fmt"
	"image/color"

	"breathe/internal/core/breath"
	"breathe/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Config defines window visuals.
type Config struct {
	Fullscreen     bool
	PulseIndicator bool
}

// Callbacks defines button handlers.
type Callbacks struct {
	OnAddMinute func()
	OnStart     func()
	OnStop      func()
	OnRestart   func()
}

var (
	textColor    = color.NRGBA{R: 240, G: 246, B: 244, A: 255}
	accentColor  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	pulseOff     = color.NRGBA{R: 94, G: 139, B: 126, A: 80}
	pulseOn      = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	circleColor  = color.NRGBA{R: 94, G: 139, B: 126, A: 200}
	surfaceColor = color.NRGBA{R: 31, G: 48, B: 52, A: 255}
)

// Window is the main application window holding the setup, meditation and
// finish screens. Its methods must be called on the fyne main goroutine.
type Window struct {
	window    fyne.Window
	config    Config
	callbacks Callbacks

	durationLabel  *canvas.Text
	countdownLabel *canvas.Text
	guideLabel     *canvas.Text
	pulse          *canvas.Circle
	circle         *breathCircle

	addButton     *widget.Button
	startButton   *widget.Button
	stopButton    *widget.Button
	restartButton *widget.Button

	screens map[session.Screen]fyne.CanvasObject
	screen  session.Screen
}

// New creates the main window on the setup screen.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("Breathe")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:    window,
		config:    config,
		callbacks: callbacks,
	}

	view.durationLabel = newText("5", 64, true)
	view.countdownLabel = newText("00:00", 28, true)
	view.countdownLabel.Color = accentColor
	view.guideLabel = newText("", 32, false)
	view.pulse = canvas.NewCircle(pulseOff)
	view.circle = newBreathCircle(circleColor)

	view.addButton = widget.NewButtonWithIcon("1 min", theme.ContentAddIcon(), func() {
		if view.callbacks.OnAddMinute != nil {
			view.callbacks.OnAddMinute()
		}
	})
	view.startButton = widget.NewButton("Start", func() {
		if view.callbacks.OnStart != nil {
			view.callbacks.OnStart()
		}
	})
	view.startButton.Importance = widget.HighImportance
	view.stopButton = widget.NewButton("Stop", func() {
		if view.callbacks.OnStop != nil {
			view.callbacks.OnStop()
		}
	})
	view.restartButton = widget.NewButton("Restart", func() {
		if view.callbacks.OnRestart != nil {
			view.callbacks.OnRestart()
		}
	})

	setup := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(newText("Breathe", 24, true)),
		container.NewCenter(view.durationLabel),
		container.NewCenter(newText("minutes", 16, false)),
		container.NewCenter(container.NewHBox(view.addButton, view.startButton)),
		layout.NewSpacer(),
	)

	pulseHolder := container.NewGridWrap(fyne.NewSize(18, 18), view.pulse)
	if !config.PulseIndicator {
		pulseHolder.Hide()
	}
	meditation := container.NewBorder(
		container.NewCenter(view.countdownLabel),
		container.NewCenter(container.NewHBox(pulseHolder, view.stopButton)),
		nil,
		nil,
		container.NewStack(view.circle.object(), container.NewCenter(view.guideLabel)),
	)

	finish := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(newText("お疲れさまでした", 28, true)),
		container.NewCenter(newText("Session complete", 16, false)),
		container.NewCenter(view.restartButton),
		layout.NewSpacer(),
	)

	view.screens = map[session.Screen]fyne.CanvasObject{
		session.ScreenSetup:      setup,
		session.ScreenMeditation: meditation,
		session.ScreenFinish:     finish,
	}

	background := canvas.NewRectangle(surfaceColor)
	window.SetContent(container.NewStack(background, setup, meditation, finish))
	window.Resize(fyne.NewSize(420, 560))
	view.ShowScreen(session.ScreenSetup)

	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without quitting.
func (view *Window) Hide() {
	view.window.Hide()
}

// Screen returns the visible screen.
func (view *Window) Screen() session.Screen {
	return view.screen
}

// ShowScreen switches the visible screen.
func (view *Window) ShowScreen(screen session.Screen) {
	for name, object := range view.screens {
		if name == screen {
			object.Show()
		} else {
			object.Hide()
		}
	}
	view.screen = screen

	switch screen {
	case session.ScreenMeditation:
		view.guideLabel.Text = ""
		view.guideLabel.Refresh()
		view.circle.reset()
		if view.config.Fullscreen {
			view.window.SetFullScreen(true)
		}
	default:
		view.circle.stop()
		view.SetPulse(false)
		if view.config.Fullscreen {
			view.window.SetFullScreen(false)
		}
	}
}

// SetCountdown updates the remaining time label.
func (view *Window) SetCountdown(text string) {
	view.countdownLabel.Text = text
	view.countdownLabel.Refresh()
}

// SetDuration updates the selected minutes on the setup screen.
func (view *Window) SetDuration(minutes int) {
	view.durationLabel.Text = fmt.Sprintf("%d", minutes)
	view.durationLabel.Refresh()
}

// SetGuidance updates the breathing prompt.
func (view *Window) SetGuidance(text string) {
	view.guideLabel.Text = text
	view.guideLabel.Refresh()
}

// PhaseStarted animates the breathing circle for phase.
func (view *Window) PhaseStarted(phase breath.Phase) {
	view.circle.animate(phase)
}

// SetPulse lights the pulse indicator while the haptic motor is on.
func (view *Window) SetPulse(on bool) {
	if on {
		view.pulse.FillColor = pulseOn
	} else {
		view.pulse.FillColor = pulseOff
	}
	view.pulse.Refresh()
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, textColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}
