package mainwindow

import (
	"image/color"
	"time"

	"pomodoro/internal/core/heartbeat"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/phasetimer"
	"pomodoro/internal/i18n"
	"pomodoro/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultWidth  = float32(450)
	defaultHeight = float32(400)
)

var (
	workColor      = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	breakColor     = color.NRGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	timeColor      = color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	timeBackground = color.NRGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
)

// Config defines main window options.
type Config struct {
	Title        string
	TickInterval time.Duration
}

// Status is the display state pushed to secondary views after each refresh.
type Status struct {
	Phase     phasetimer.Phase
	Remaining string
	Running   bool
	Started   bool
	Progress  float64
}

// Window binds the PhaseTimer to labels and buttons.
type Window struct {
	window      fyne.Window
	timer       *phasetimer.PhaseTimer
	beat        *heartbeat.Heartbeat
	settings    preferences.Settings
	form        *preferences.Form
	statusLabel *canvas.Text
	timeLabel   *canvas.Text
	startButton *widget.Button
	resetButton *widget.Button
	onRefresh   func(Status)
	onSettings  func(preferences.Settings)
}

// New creates the main window for timer, sized from settings.Geometry.
func New(app fyne.App, config Config, timer *phasetimer.PhaseTimer, settings preferences.Settings) *Window {
	if config.Title == "" {
		config.Title = "Pomodoro Timer"
	}
	window := app.NewWindow(config.Title)

	statusLabel := canvas.NewText("", workColor)
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	statusLabel.TextSize = 18

	timeLabel := canvas.NewText("--:--", timeColor)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	timeLabel.TextSize = 72

	timeBox := canvas.NewRectangle(timeBackground)
	timeBox.CornerRadius = 20

	view := &Window{
		window:      window,
		timer:       timer,
		settings:    settings,
		statusLabel: statusLabel,
		timeLabel:   timeLabel,
	}
	view.beat = heartbeat.New(config.TickInterval, func(time.Time) {
		fyne.Do(view.HandleTick)
	})
	view.form = preferences.NewForm(settings, view.ApplySettings)

	view.startButton = widget.NewButton(i18n.T("Start"), view.ToggleStartPause)
	view.startButton.Importance = widget.SuccessImportance
	view.resetButton = widget.NewButton(i18n.T("Reset"), view.Reset)
	view.resetButton.Importance = widget.DangerImportance

	toolbar := widget.NewToolbar(
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), view.Skip),
		widget.NewToolbarAction(theme.SettingsIcon(), view.OpenSettings),
	)

	content := container.NewPadded(container.NewVBox(
		toolbar,
		statusLabel,
		container.NewStack(timeBox, container.NewPadded(timeLabel)),
		container.NewGridWithColumns(2, view.startButton, view.resetButton),
		layout.NewSpacer(),
	))
	window.SetContent(content)

	size := fyne.NewSize(defaultWidth, defaultHeight)
	if !settings.Geometry.IsZero() {
		size = fyne.NewSize(settings.Geometry.Width, settings.Geometry.Height)
	}
	window.Resize(size)
	window.Canvas().SetOnTypedRune(view.HandleKeyRune)

	view.Refresh()
	return view
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// SetOnRefresh sets a callback fired after every display refresh.
func (view *Window) SetOnRefresh(handler func(Status)) {
	view.onRefresh = handler
	view.Refresh()
}

// SetOnSettingsChanged sets a callback fired when the settings form saves.
func (view *Window) SetOnSettingsChanged(handler func(preferences.Settings)) {
	view.onSettings = handler
}

// ToggleStartPause starts an idle timer or pauses a running one.
func (view *Window) ToggleStartPause() {
	if view.timer.Running() {
		view.timer.Pause()
	} else {
		view.timer.Start()
	}
	view.syncHeartbeat()
	view.Refresh()
}

// Reset restores the current phase's full duration.
func (view *Window) Reset() {
	view.timer.Reset()
	view.syncHeartbeat()
	view.Refresh()
}

// Skip moves to the other phase without waiting for the countdown.
func (view *Window) Skip() {
	view.timer.Skip()
	view.syncHeartbeat()
	view.Refresh()
}

// HandleTick forwards one heartbeat to the timer.
func (view *Window) HandleTick() {
	view.timer.Tick()
	view.syncHeartbeat()
	view.Refresh()
}

// OpenSettings shows the settings form.
func (view *Window) OpenSettings() {
	view.form.Show(view.window)
}

// ApplySettings reconfigures the timer with new durations. The timer stops
// and resets to the current phase.
func (view *Window) ApplySettings(settings preferences.Settings) {
	settings.Geometry = view.settings.Geometry
	view.settings = settings
	view.form.UpdateSettings(settings)
	view.timer.SetDurations(settings.WorkDuration, settings.BreakDuration)
	view.syncHeartbeat()
	view.Refresh()
	if view.onSettings != nil {
		view.onSettings(settings)
	}
}

// Settings returns current durations and window geometry for persistence.
func (view *Window) Settings() preferences.Settings {
	settings := view.settings
	settings.WorkDuration, settings.BreakDuration = view.timer.Durations()
	size := view.window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		settings.Geometry = model.Geometry{Width: size.Width, Height: size.Height}
	}
	return settings
}

// HandleKeyRune maps keyboard shortcuts to actions.
func (view *Window) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		view.ToggleStartPause()
	case 'r', 'R':
		view.Reset()
	case 's', 'S':
		view.Skip()
	}
}

// Stop halts the heartbeat.
func (view *Window) Stop() {
	view.beat.Stop()
}

// Refresh redraws labels and captions from the timer.
func (view *Window) Refresh() {
	status := view.status()

	if status.Phase == phasetimer.PhaseBreak {
		view.statusLabel.Text = i18n.T("Break Time")
		view.statusLabel.Color = breakColor
	} else {
		view.statusLabel.Text = i18n.T("Work Session")
		view.statusLabel.Color = workColor
	}
	view.timeLabel.Text = status.Remaining
	view.startButton.SetText(startCaption(status))

	view.statusLabel.Refresh()
	view.timeLabel.Refresh()

	if view.onRefresh != nil {
		view.onRefresh(status)
	}
}

func (view *Window) status() Status {
	return Status{
		Phase:     view.timer.CurrentPhase(),
		Remaining: view.timer.FormattedRemaining(),
		Running:   view.timer.Running(),
		Started:   view.timer.Started(),
		Progress:  view.timer.Progress(),
	}
}

func (view *Window) syncHeartbeat() {
	if view.timer.Running() {
		view.beat.Start()
	} else {
		view.beat.Stop()
	}
}

func startCaption(status Status) string {
	switch {
	case status.Running:
		return i18n.T("Pause")
	case status.Started:
		return i18n.T("Resume")
	default:
		return i18n.T("Start")
	}
}
