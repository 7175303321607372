package tray

import (
	"fmt"

	"breathe/internal/core/session"

	"fyne.io/fyne/v2"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow  func()
	OnStart func()
	OnStop  func()
	OnQuit  func()
}

// Manager handles system tray state. It implements session.View so the
// status line follows the countdown.
type Manager struct {
	app        MenuSetter
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	screen     session.Screen
	countdown  string
	minutes    int
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		screen:    session.ScreenSetup,
		minutes:   session.DefaultMinutes,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start session", func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})
	manager.stopItem = fyne.NewMenuItem("Stop session", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})

	manager.refresh()
	return manager
}

// ShowScreen toggles the session items.
func (manager *Manager) ShowScreen(screen session.Screen) {
	manager.screen = screen
	manager.refresh()
}

// SetCountdown updates the remaining time in the status line.
func (manager *Manager) SetCountdown(text string) {
	manager.countdown = text
	manager.refresh()
}

// SetDuration updates the selected minutes in the status line.
func (manager *Manager) SetDuration(minutes int) {
	manager.minutes = minutes
	manager.refresh()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Running reports whether the tray shows a session in progress.
func (manager *Manager) Running() bool {
	return manager.screen == session.ScreenMeditation
}

func (manager *Manager) refresh() {
	running := manager.Running()
	switch manager.screen {
	case session.ScreenMeditation:
		manager.statusItem.Label = fmt.Sprintf("Breathing: %s left", manager.countdown)
	case session.ScreenFinish:
		manager.statusItem.Label = "Session complete"
	default:
		manager.statusItem.Label = fmt.Sprintf("Ready: %d min", manager.minutes)
	}
	manager.startItem.Disabled = running
	manager.stopItem.Disabled = !running

	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Breathe",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show window", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.startItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
