package session

// Screen identifies which view the application shows.
type Screen string

const (
	ScreenSetup      Screen = "setup"
	ScreenMeditation Screen = "meditation"
	ScreenFinish     Screen = "finish"
)

// View presents session state.
type View interface {
	ShowScreen(screen Screen)
	SetCountdown(text string)
	SetDuration(minutes int)
}

// MultiView forwards every update to each of its views in order.
type MultiView []View

// ShowScreen switches every view to screen.
func (views MultiView) ShowScreen(screen Screen) {
	for _, view := range views {
		view.ShowScreen(screen)
	}
}

// SetCountdown publishes the remaining time to every view.
func (views MultiView) SetCountdown(text string) {
	for _, view := range views {
		view.SetCountdown(text)
	}
}

// SetDuration publishes the selected length to every view.
func (views MultiView) SetDuration(minutes int) {
	for _, view := range views {
		view.SetDuration(minutes)
	}
}
