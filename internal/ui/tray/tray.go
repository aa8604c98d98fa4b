package tray

import (
	"fmt"

	"pomodoro/internal/i18n"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle   func()
	OnReset    func()
	OnSkip     func()
	OnSettings func()
	OnQuit     func()
}

// Icons are swapped as the phase and running state change.
type Icons struct {
	Work   fyne.Resource
	Break  fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        App
	callbacks  Callbacks
	icons      Icons
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	menu       *fyne.Menu
	current    fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		icons:     icons,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem(i18n.T("Reset"), func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItem(i18n.T("Skip phase"), func() {
			if manager.callbacks.OnSkip != nil {
				manager.callbacks.OnSkip()
			}
		}),
		fyne.NewMenuItem(i18n.T("Settings"), func() {
			if manager.callbacks.OnSettings != nil {
				manager.callbacks.OnSettings()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("Quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	app.SetSystemTrayMenu(manager.menu)
	manager.setIcon(icons.Work)

	return manager
}

// Update refreshes the status line, toggle caption and icon. isBreak selects
// the break icon; started picks Resume over Start while stopped. The native
// menu is only re-set when a label changed.
func (manager *Manager) Update(isBreak bool, remaining string, running, started bool) {
	phase := i18n.T("Work")
	icon := manager.icons.Work
	if isBreak {
		phase = i18n.T("Break")
		icon = manager.icons.Break
	}

	status := fmt.Sprintf("%s · %s", phase, remaining)
	var toggle string
	switch {
	case running:
		toggle = i18n.T("Pause")
	case started:
		toggle = i18n.T("Resume")
		status = fmt.Sprintf("%s (%s)", status, i18n.T("paused"))
		icon = manager.icons.Paused
	default:
		toggle = i18n.T("Start")
	}
	manager.setIcon(icon)
	if status == manager.statusItem.Label && toggle == manager.toggleItem.Label {
		return
	}
	manager.statusItem.Label = status
	manager.toggleItem.Label = toggle
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the start/pause item caption.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) setIcon(icon fyne.Resource) {
	if icon == nil || icon == manager.current {
		return
	}
	manager.current = icon
	manager.app.SetSystemTrayIcon(icon)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
