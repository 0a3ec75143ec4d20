package controllers

import (
	"fmt"
	"sync"

	"lambda-invoker/internal/logger"
	"lambda-invoker/internal/models"
)

// FormView is the part of the main view the controller drives.
type FormView interface {
	FormValues() (name, career, college string)
	SetDetailsVisible(visible bool)
	ClearOutput()
	SetResult(text string)
	SetError(text string)
	SetInvokeHandler(handler func())
	SetOperationChangeHandler(handler func(string))
}

// AsyncInvoker runs a request off the UI thread and reports through exactly one callback.
type AsyncInvoker interface {
	InvokeAsync(req models.Request, onResult func(string), onError func(string))
	Shutdown()
}

// EventHandler represents a function that handles application events
type EventHandler func(data interface{}) error

const (
	EventInvocationStarted   = "invocation_started"
	EventInvocationSucceeded = "invocation_succeeded"
	EventInvocationFailed    = "invocation_failed"
)

// MainController owns the selected operation and turns form state into invocations.
type MainController struct {
	invoker AsyncInvoker
	logger  logger.Logger

	mainView FormView

	mu        sync.RWMutex
	operation models.Operation

	eventHandlers map[string][]EventHandler
	eventMu       sync.RWMutex
}

// NewMainController creates a new main controller
func NewMainController(invoker AsyncInvoker, log logger.Logger) *MainController {
	controller := &MainController{
		invoker:       invoker,
		logger:        log,
		operation:     models.OperationGet,
		eventHandlers: make(map[string][]EventHandler),
	}

	controller.initializeEventHandlers()
	return controller
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view FormView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	mc.mainView.SetDetailsVisible(mc.Operation().ShowsDetails())
}

// Operation returns the currently selected operation.
func (mc *MainController) Operation() models.Operation {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.operation
}

// ChangeOperation switches the selected operation and updates field visibility.
func (mc *MainController) ChangeOperation(name string) {
	op, err := models.ParseOperation(name)
	if err != nil {
		mc.logger.Warning("MainController", "ignoring operation change", map[string]interface{}{
			"operation": name,
			"error":     err.Error(),
		})
		return
	}

	mc.mu.Lock()
	mc.operation = op
	mc.mu.Unlock()

	if mc.mainView != nil {
		mc.mainView.SetDetailsVisible(op.ShowsDetails())
	}
}

// Invoke clears the output areas, builds a request from the form and starts the call.
func (mc *MainController) Invoke() {
	if mc.mainView == nil {
		mc.logger.Error("MainController", fmt.Errorf("main view not set"), nil)
		return
	}

	name, career, college := mc.mainView.FormValues()
	req := models.NewRequest(mc.Operation(), name, career, college)

	mc.mainView.ClearOutput()
	mc.emitEvent(EventInvocationStarted, req)

	mc.invoker.InvokeAsync(req, mc.handleResult, mc.handleError)
}

func (mc *MainController) handleResult(result string) {
	mc.mainView.SetResult(result)
	mc.emitEvent(EventInvocationSucceeded, result)
}

func (mc *MainController) handleError(message string) {
	mc.mainView.SetError(message)
	mc.emitEvent(EventInvocationFailed, message)
}

// initializeEventHandlers sets up default event handlers
func (mc *MainController) initializeEventHandlers() {
	mc.AddEventListener(EventInvocationStarted, mc.onInvocationStarted)
	mc.AddEventListener(EventInvocationFailed, mc.onInvocationFailed)
}

// setupViewEventHandlers connects view events to controller methods
func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetInvokeHandler(mc.Invoke)
	mc.mainView.SetOperationChangeHandler(mc.ChangeOperation)
}

// AddEventListener adds an event handler for a specific event type
func (mc *MainController) AddEventListener(eventType string, handler EventHandler) {
	mc.eventMu.Lock()
	defer mc.eventMu.Unlock()

	mc.eventHandlers[eventType] = append(mc.eventHandlers[eventType], handler)
}

// emitEvent triggers all handlers for a specific event type
func (mc *MainController) emitEvent(eventType string, data interface{}) {
	mc.eventMu.RLock()
	handlers := mc.eventHandlers[eventType]
	mc.eventMu.RUnlock()

	for _, handler := range handlers {
		go func(h EventHandler) {
			if err := h(data); err != nil {
				mc.logger.Error("MainController", fmt.Errorf("event handler error (%s): %w", eventType, err), nil)
			}
		}(handler)
	}
}

func (mc *MainController) onInvocationStarted(data interface{}) error {
	req, ok := data.(models.Request)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventInvocationStarted)
	}

	mc.logger.Info("MainController", "invocation requested", map[string]interface{}{
		"operation": string(req.Operation),
	})
	return nil
}

func (mc *MainController) onInvocationFailed(data interface{}) error {
	message, ok := data.(string)
	if !ok {
		return fmt.Errorf("invalid data type for %s event", EventInvocationFailed)
	}

	mc.logger.Warning("MainController", "invocation failed", map[string]interface{}{
		"message": message,
	})
	return nil
}

// Shutdown waits for outstanding invocations.
func (mc *MainController) Shutdown() {
	mc.invoker.Shutdown()
	mc.logger.Info("MainController", "controller shutdown completed", nil)
}
