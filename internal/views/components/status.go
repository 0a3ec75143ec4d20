package components

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// OutputPanel holds the result and error display areas.
type OutputPanel struct {
	container  *fyne.Container
	resultText *widget.Entry
	errorText  *widget.Entry
}

// NewOutputPanel creates a new output panel component
func NewOutputPanel() *OutputPanel {
	op := &OutputPanel{}
	op.createComponents()
	op.buildLayout()
	return op
}

func (op *OutputPanel) createComponents() {
	op.resultText = widget.NewMultiLineEntry()
	op.resultText.SetMinRowsVisible(5)

	// Read-only: users can select the text but not edit it.
	op.errorText = widget.NewMultiLineEntry()
	op.errorText.Wrapping = fyne.TextWrapWord
	op.errorText.SetMinRowsVisible(4)
	op.errorText.Disable()
}

func (op *OutputPanel) buildLayout() {
	op.container = container.NewVBox(
		op.resultText,
		op.errorText,
	)
}

// SetResult replaces the result text
func (op *OutputPanel) SetResult(text string) {
	op.resultText.SetText(text)
}

// SetError replaces the error text
func (op *OutputPanel) SetError(text string) {
	op.errorText.SetText(text)
}

// Clear empties both areas
func (op *OutputPanel) Clear() {
	op.resultText.SetText("")
	op.errorText.SetText("")
}

// Result returns the current result text
func (op *OutputPanel) Result() string {
	return op.resultText.Text
}

// Error returns the current error text
func (op *OutputPanel) Error() string {
	return op.errorText.Text
}

// GetContainer returns the output panel container
func (op *OutputPanel) GetContainer() *fyne.Container {
	return op.container
}

// StatusBar displays the target function and call statistics
type StatusBar struct {
	container   *fyne.Container
	targetLabel *widget.Label
	statsLabel  *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.targetLabel = widget.NewLabel("Function: --")
	sb.statsLabel = widget.NewLabel("Calls: 0")
	sb.container = container.NewHBox(
		sb.targetLabel,
		widget.NewSeparator(),
		sb.statsLabel,
	)
	return sb
}

// SetTarget shows the function name and region
func (sb *StatusBar) SetTarget(function, region string) {
	sb.targetLabel.SetText(fmt.Sprintf("Function: %s (%s)", function, region))
}

// SetStats shows the call counters
func (sb *StatusBar) SetStats(total, failures, inFlight int64, average time.Duration) {
	sb.statsLabel.SetText(fmt.Sprintf("Calls: %d, failed: %d, running: %d, avg: %s",
		total, failures, inFlight, average.Round(time.Millisecond)))
}

// Target returns the target label text
func (sb *StatusBar) Target() string {
	return sb.targetLabel.Text
}

// Stats returns the statistics label text
func (sb *StatusBar) Stats() string {
	return sb.statsLabel.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
