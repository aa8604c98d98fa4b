package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/i18n"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Form collects the two bounded durations. The core never sees it; on
// submit it hands back a Settings value.
type Form struct {
	settings  Settings
	onSave    func(Settings)
	workEntry *widget.Entry
	brkEntry  *widget.Entry
}

// NewForm builds the entries pre-filled from settings.
func NewForm(settings Settings, onSave func(Settings)) *Form {
	workEntry := widget.NewEntry()
	workEntry.Validator = boundedValidator(model.MinWorkMinutes, model.MaxWorkMinutes)

	brkEntry := widget.NewEntry()
	brkEntry.Validator = boundedValidator(model.MinBreakMinutes, model.MaxBreakMinutes)

	form := &Form{
		onSave:    onSave,
		workEntry: workEntry,
		brkEntry:  brkEntry,
	}
	form.UpdateSettings(settings)
	return form
}

// UpdateSettings replaces the form values.
func (form *Form) UpdateSettings(settings Settings) {
	form.settings = settings
	form.workEntry.SetText(strconv.Itoa(settings.WorkMinutes()))
	form.brkEntry.SetText(strconv.Itoa(settings.BreakMinutes()))
}

// Items returns the form rows.
func (form *Form) Items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem(i18n.T("Work (minutes)"), form.workEntry),
		widget.NewFormItem(i18n.T("Break (minutes)"), form.brkEntry),
	}
}

// Show opens the form as a modal dialog over parent.
func (form *Form) Show(parent fyne.Window) {
	form.UpdateSettings(form.settings)
	formDialog := dialog.NewForm(i18n.T("Settings"), i18n.T("Save"), i18n.T("Cancel"), form.Items(), func(confirmed bool) {
		if confirmed {
			form.Submit()
		}
	}, parent)
	formDialog.Show()
}

// Submit parses the entries and reports the new settings. Invalid input
// leaves the settings untouched and returns false.
func (form *Form) Submit() bool {
	workMinutes, ok := parseBoundedInt(form.workEntry.Text, model.MinWorkMinutes, model.MaxWorkMinutes)
	if !ok {
		return false
	}
	breakMinutes, ok := parseBoundedInt(form.brkEntry.Text, model.MinBreakMinutes, model.MaxBreakMinutes)
	if !ok {
		return false
	}

	settings := form.settings
	settings.WorkDuration = time.Duration(workMinutes) * time.Minute
	settings.BreakDuration = time.Duration(breakMinutes) * time.Minute
	form.settings = settings

	if form.onSave != nil {
		form.onSave(settings)
	}
	return true
}

func boundedValidator(low, high int) fyne.StringValidator {
	return func(value string) error {
		if _, ok := parseBoundedInt(value, low, high); !ok {
			return fmt.Errorf("enter a whole number from %d to %d", low, high)
		}
		return nil
	}
}

func parseBoundedInt(value string, low, high int) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < low || parsed > high {
		return 0, false
	}
	return parsed, true
}
