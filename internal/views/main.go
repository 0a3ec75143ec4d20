package views

import (
	"time"

	"lambda-invoker/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// MainView is the single application window: request form, output areas and status bar.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	form          *components.RequestForm
	output        *components.OutputPanel
	statusBar     *components.StatusBar

	invokeHandler          func()
	operationChangeHandler func(string)
}

// NewMainView creates a new main view
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.form = components.NewRequestForm()
	mv.output = components.NewOutputPanel()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	content := container.NewVBox(
		mv.form.GetContainer(),
		mv.output.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		container.NewVScroll(content),
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers forwards form events to whichever handlers the controller registered.
func (mv *MainView) setupEventHandlers() {
	mv.form.SetInvokeHandler(func() {
		if mv.invokeHandler != nil {
			mv.invokeHandler()
		}
	})

	mv.form.SetOperationChangeHandler(func(operation string) {
		if mv.operationChangeHandler != nil {
			mv.operationChangeHandler(operation)
		}
	})
}

// SetInvokeHandler sets the handler for invoke requests
func (mv *MainView) SetInvokeHandler(handler func()) {
	mv.invokeHandler = handler
}

// SetOperationChangeHandler sets the handler for operation changes
func (mv *MainView) SetOperationChangeHandler(handler func(string)) {
	mv.operationChangeHandler = handler
}

// FormValues returns the current name, career and college texts.
func (mv *MainView) FormValues() (name, career, college string) {
	return mv.form.Values()
}

// SetDetailsVisible shows or hides the career and college fields
func (mv *MainView) SetDetailsVisible(visible bool) {
	fyne.Do(func() {
		mv.form.SetDetailsVisible(visible)
	})
}

// ClearOutput empties the result and error areas
func (mv *MainView) ClearOutput() {
	fyne.Do(func() {
		mv.output.Clear()
	})
}

// SetResult displays a formatted result. Safe to call from any goroutine.
func (mv *MainView) SetResult(text string) {
	fyne.Do(func() {
		mv.output.SetResult(text)
	})
}

// SetError displays an error message verbatim. Safe to call from any goroutine.
func (mv *MainView) SetError(text string) {
	fyne.Do(func() {
		mv.output.SetError(text)
	})
}

// SetTarget shows the function being invoked in the status bar
func (mv *MainView) SetTarget(function, region string) {
	fyne.Do(func() {
		mv.statusBar.SetTarget(function, region)
	})
}

// SetInvocationStats updates the status bar counters
func (mv *MainView) SetInvocationStats(total, failures, inFlight int64, average time.Duration) {
	fyne.Do(func() {
		mv.statusBar.SetStats(total, failures, inFlight, average)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}
