package components

import (
	"lambda-invoker/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	DefaultName    = "student_name"
	DefaultCareer  = "student_career"
	DefaultCollege = "student_college"
)

// RequestForm collects the operation and student fields.
type RequestForm struct {
	container       *fyne.Container
	operationSelect *widget.Select
	nameEntry       *widget.Entry
	careerEntry     *widget.Entry
	collegeEntry    *widget.Entry
	invokeButton    *widget.Button

	invokeHandler          func()
	operationChangeHandler func(string)
}

// NewRequestForm creates a new request form component
func NewRequestForm() *RequestForm {
	form := &RequestForm{}
	form.createComponents()
	form.buildLayout()
	form.setupEventHandlers()
	return form
}

// createComponents initializes all form widgets
func (f *RequestForm) createComponents() {
	f.operationSelect = widget.NewSelect(models.OperationNames(), nil)
	f.operationSelect.SetSelected(string(models.OperationGet))

	f.nameEntry = widget.NewEntry()
	f.nameEntry.SetText(DefaultName)

	f.careerEntry = widget.NewEntry()
	f.careerEntry.SetText(DefaultCareer)

	f.collegeEntry = widget.NewEntry()
	f.collegeEntry.SetText(DefaultCollege)

	f.invokeButton = widget.NewButton("Invoke Lambda", nil)
	f.invokeButton.Importance = widget.HighImportance

	f.SetDetailsVisible(models.OperationGet.ShowsDetails())
}

// buildLayout constructs the form layout
func (f *RequestForm) buildLayout() {
	f.container = container.NewVBox(
		widget.NewLabel("Operation Type:"),
		f.operationSelect,
		widget.NewLabel("Data:"),
		f.nameEntry,
		f.careerEntry,
		f.collegeEntry,
		f.invokeButton,
	)
}

// setupEventHandlers connects widget events
func (f *RequestForm) setupEventHandlers() {
	f.operationSelect.OnChanged = func(selected string) {
		if f.operationChangeHandler != nil {
			f.operationChangeHandler(selected)
		}
	}

	f.invokeButton.OnTapped = func() {
		if f.invokeHandler != nil {
			f.invokeHandler()
		}
	}
}

// SetInvokeHandler sets the handler for the invoke button
func (f *RequestForm) SetInvokeHandler(handler func()) {
	f.invokeHandler = handler
}

// SetOperationChangeHandler sets the handler for operation selection changes
func (f *RequestForm) SetOperationChangeHandler(handler func(string)) {
	f.operationChangeHandler = handler
}

// Values returns the current entry texts.
func (f *RequestForm) Values() (name, career, college string) {
	return f.nameEntry.Text, f.careerEntry.Text, f.collegeEntry.Text
}

// SetOperation selects an operation as if the user had picked it.
func (f *RequestForm) SetOperation(operation string) {
	f.operationSelect.SetSelected(operation)
}

// InvokeButton returns the invoke button
func (f *RequestForm) InvokeButton() *widget.Button {
	return f.invokeButton
}

// SelectedOperation returns the selector text.
func (f *RequestForm) SelectedOperation() string {
	return f.operationSelect.Selected
}

// SetDetailsVisible shows or hides the career and college entries.
func (f *RequestForm) SetDetailsVisible(visible bool) {
	if visible {
		f.careerEntry.Show()
		f.collegeEntry.Show()
	} else {
		f.careerEntry.Hide()
		f.collegeEntry.Hide()
	}
}

// DetailsVisible reports whether the career and college entries are shown.
func (f *RequestForm) DetailsVisible() bool {
	return f.careerEntry.Visible() && f.collegeEntry.Visible()
}

// GetContainer returns the form container
func (f *RequestForm) GetContainer() *fyne.Container {
	return f.container
}
