// Package term renders a breathing session as styled terminal lines for
// headless use.
package term

import (
	"fmt"
	"io"
	"strings"

	"breathe/internal/core/breath"
	"breathe/internal/core/session"

	"github.com/charmbracelet/lipgloss"
)

var (
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8BE42")).Bold(true)
	inhaleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FC8A9"))
	holdStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A7C4BC"))
	exhaleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E8B7E"))
	bannerStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5E8B7E"))
)

// View writes session updates to out.
type View struct {
	out       io.Writer
	countdown string
}

// NewView creates a View writing to out.
func NewView(out io.Writer) *View {
	return &View{out: out, countdown: "--:--"}
}

// ShowScreen prints a banner for the meditation and finish screens.
func (view *View) ShowScreen(screen session.Screen) {
	switch screen {
	case session.ScreenMeditation:
		view.println(bannerStyle.Render("Breathe: session started"))
	case session.ScreenFinish:
		view.println(bannerStyle.Render("お疲れさまでした: session complete"))
	}
}

// SetCountdown records the remaining time and prints it on whole minutes.
func (view *View) SetCountdown(text string) {
	view.countdown = text
	if strings.HasSuffix(text, ":00") {
		view.println(countdownStyle.Render(text + " remaining"))
	}
}

// SetDuration prints the selected session length.
func (view *View) SetDuration(minutes int) {
	view.println(fmt.Sprintf("duration: %d min", minutes))
}

// SetGuidance prints the breathing prompt with the remaining time.
func (view *View) SetGuidance(text string) {
	style := inhaleStyle
	switch text {
	case breath.PhaseHold.Guidance():
		style = holdStyle
	case breath.PhaseExhale.Guidance():
		style = exhaleStyle
	}
	view.println(fmt.Sprintf("[%s] %s", view.countdown, style.Render(text)))
}

func (view *View) println(line string) {
	_, _ = fmt.Fprintln(view.out, line)
}
