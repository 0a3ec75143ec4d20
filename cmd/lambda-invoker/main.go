package main

import (
	"context"
	"log"
	"runtime"
	"time"

	"lambda-invoker/internal/config"
	"lambda-invoker/internal/controllers"
	"lambda-invoker/internal/logger"
	"lambda-invoker/internal/services"
	"lambda-invoker/internal/shutdown"
	"lambda-invoker/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Application wires the Fyne app, the form view, the controller and the invoker.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	invoker    *services.Invoker
	shutdown   *shutdown.Manager
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := NewApplication(ctx, config.Load())
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()

	log.Println("Application terminated successfully")
}

// NewApplication creates and initializes the application
func NewApplication(ctx context.Context, cfg config.Config) (*Application, error) {
	appLogger := logger.NewConsoleLogger(cfg.LogLevel)

	invoker, err := services.NewLambdaInvoker(ctx, cfg.Invoker, appLogger)
	if err != nil {
		return nil, err
	}

	fyneApp := app.NewWithID(config.AppID)
	app.SetMetadata(fyne.AppMetadata{
		ID:      config.AppID,
		Name:    config.AppName,
		Version: config.AppVersion,
	})

	window := fyneApp.NewWindow(config.AppName)
	window.Resize(fyne.NewSize(600, 400))
	window.CenterOnScreen()

	mainView := views.NewMainView(window)
	mainController := controllers.NewMainController(invoker, appLogger)
	mainController.SetMainView(mainView)

	invokerCfg := invoker.Config()
	mainView.SetTarget(invokerCfg.FunctionName, invokerCfg.Region)

	shutdownManager := shutdown.NewManager(appLogger, shutdown.DefaultStepTimeout)
	shutdownManager.Register("controller", mainController)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: mainController,
		view:       mainView,
		invoker:    invoker,
		shutdown:   shutdownManager,
	}

	application.setupWindowEvents()

	appLogger.Info("Application", "application initialized", map[string]interface{}{
		"version":    config.AppVersion,
		"function":   invokerCfg.FunctionName,
		"region":     invokerCfg.Region,
		"go_version": runtime.Version(),
	})

	return application, nil
}

// Run shows the window and blocks in the Fyne event loop
func (app *Application) Run() {
	app.logger.Info("Application", "starting application UI", nil)

	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	go app.startStatsMonitoring()

	app.view.Show()
	app.fyneApp.Run()

	app.shutdown.Shutdown()
}

func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(func() {
		app.logger.Info("Application", "window close requested", nil)

		app.view.ShowConfirm(
			"Exit Application",
			"Are you sure you want to exit?",
			func(confirmed bool) {
				if confirmed {
					app.window.Close()
				}
			},
		)
	})

	app.window.SetOnClosed(func() {
		app.logger.Info("Application", "window closed", nil)
	})
}

// startStatsMonitoring refreshes the status bar from invoker statistics
func (app *Application) startStatsMonitoring() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	ctx := app.shutdown.Context()
	for {
		select {
		case <-ticker.C:
			stats := app.invoker.GetStats()
			app.view.SetInvocationStats(stats.TotalCalls, stats.Failures, stats.InFlight, stats.AverageTime)
		case <-ctx.Done():
			return
		}
	}
}
