package tray

import (
	"testing"

	"breathe/internal/core/session"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuRecorder struct {
	menus []*fyne.Menu
}

func (recorder *menuRecorder) SetSystemTrayMenu(menu *fyne.Menu) {
	recorder.menus = append(recorder.menus, menu)
}

func (recorder *menuRecorder) item(t *testing.T, label string) *fyne.MenuItem {
	t.Helper()
	require.NotEmpty(t, recorder.menus)
	menu := recorder.menus[len(recorder.menus)-1]
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestStatusFollowsSession(t *testing.T) {
	recorder := &menuRecorder{}
	manager := New(recorder, Callbacks{})
	assert.Equal(t, "Ready: 5 min", manager.Status())

	manager.SetDuration(8)
	assert.Equal(t, "Ready: 8 min", manager.Status())

	manager.ShowScreen(session.ScreenMeditation)
	manager.SetCountdown("07:59")
	assert.Equal(t, "Breathing: 07:59 left", manager.Status())
	assert.True(t, manager.Running())
	assert.True(t, recorder.item(t, "Start session").Disabled)
	assert.False(t, recorder.item(t, "Stop session").Disabled)

	manager.ShowScreen(session.ScreenFinish)
	assert.Equal(t, "Session complete", manager.Status())
	assert.False(t, manager.Running())
	assert.False(t, recorder.item(t, "Start session").Disabled)
	assert.True(t, recorder.item(t, "Stop session").Disabled)
}

func TestMenuActions(t *testing.T) {
	var calls []string
	recorder := &menuRecorder{}
	New(recorder, Callbacks{
		OnShow:  func() { calls = append(calls, "show") },
		OnStart: func() { calls = append(calls, "start") },
		OnStop:  func() { calls = append(calls, "stop") },
		OnQuit:  func() { calls = append(calls, "quit") },
	})

	for _, label := range []string{"Show window", "Start session", "Stop session", "Quit"} {
		recorder.item(t, label).Action()
	}
	assert.Equal(t, []string{"show", "start", "stop", "quit"}, calls)
}

func TestNilAppIsTolerated(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.NotPanics(t, func() {
		manager.ShowScreen(session.ScreenMeditation)
		manager.SetCountdown("01:00")
	})
}

func TestManagerImplementsView(t *testing.T) {
	var _ session.View = (*Manager)(nil)
}
