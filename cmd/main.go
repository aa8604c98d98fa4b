package main

import (
	"log"
	"time"

	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/mainwindow"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appID        = "com.pomodoro.timer"
	appTitle     = "Pomodoro Timer"
	organization = "Pomodoro"
	application  = "PomodoroTimer"
)

func main() {
	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppIcon))

	settings := preferences.DefaultSettings()
	store, err := storage.NewStore(organization, application)
	if err != nil {
		log.Printf("settings store unavailable, using defaults: %v", err)
	} else if settings, err = store.Load(); err != nil {
		log.Printf("load settings: %v", err)
	}
	log.Printf("work %v, break %v", settings.WorkDuration, settings.BreakDuration)

	timer := phasetimer.New(settings.TimerConfig(), phasetimer.SystemClock)
	timer.SetOnEvent(func(event phasetimer.Event) {
		if event.Type == phasetimer.EventPhaseChange {
			log.Printf("phase change: %s (%s)", event.Phase, phasetimer.FormatRemaining(event.Remaining))
		}
	})

	mainWindow := mainwindow.New(fyneApp, mainwindow.Config{
		Title:        appTitle,
		TickInterval: time.Second,
	}, timer, settings)
	window := mainWindow.Window()

	var watcher *storage.Watcher
	if store != nil {
		watcher, err = storage.Watch(store, settings, func(updated preferences.Settings) {
			fyne.Do(func() {
				log.Printf("settings changed on disk: work %v, break %v", updated.WorkDuration, updated.BreakDuration)
				mainWindow.ApplySettings(updated)
			})
		})
		if err != nil {
			log.Printf("settings watcher disabled: %v", err)
		}
	}
	if watcher != nil {
		mainWindow.SetOnSettingsChanged(watcher.Remember)
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Icons{
			Work:   resources.MustLogo(resources.WorkIcon),
			Break:  resources.MustLogo(resources.BreakIcon),
			Paused: resources.MustLogo(resources.PausedIcon),
		}, tray.Callbacks{
			OnToggle: mainWindow.ToggleStartPause,
			OnReset:  mainWindow.Reset,
			OnSkip:   mainWindow.Skip,
			OnSettings: func() {
				window.Show()
				window.RequestFocus()
				mainWindow.OpenSettings()
			},
			OnQuit: func() {
				window.Close()
			},
		})
		mainWindow.SetOnRefresh(func(status mainwindow.Status) {
			trayManager.Update(status.Phase == phasetimer.PhaseBreak, status.Remaining, status.Running, status.Started)
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	window.SetOnClosed(func() {
		mainWindow.Stop()
		if watcher != nil {
			_ = watcher.Close()
		}
		if store == nil {
			return
		}
		if err := store.Save(mainWindow.Settings()); err != nil {
			log.Printf("save settings: %v", err)
		}
	})
	window.SetMaster()
	window.ShowAndRun()
}
