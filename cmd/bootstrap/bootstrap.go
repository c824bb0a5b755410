package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bonk1990/gydytojas/config"
	"github.com/bonk1990/gydytojas/internal/delivery/cli"
	"github.com/bonk1990/gydytojas/internal/infrastructure/portal"
	"github.com/bonk1990/gydytojas/internal/repository"
	"github.com/bonk1990/gydytojas/internal/usecase"
	"github.com/bonk1990/gydytojas/pkg/validator"

	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config  *config.Config
	Session *portal.Session
	CLI     *cli.CLI
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := logrus.StandardLogger()

	// Initialize the portal session
	session := portal.NewSession(cfg.Portal, log)
	app.Session = session

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	filterRepo := repository.NewFilterRepository(session)
	visitRepo := repository.NewVisitRepository(session)
	bookingRepo := repository.NewBookingRepository(session)

	// Initialize usecases
	resolveUsecase := usecase.NewResolveFiltersUsecase(log, filterRepo, usecase.DefaultSimilarityFloor)
	searchUsecase := usecase.NewSearchVisitsUsecase(log, visitRepo)
	huntUsecase := usecase.NewHuntUsecase(log, searchUsecase)

	autobookUsecase := usecase.NewAutobookUsecase(log, bookingRepo, cli.CollisionPresenter{})

	app.CLI = cli.New(log, cfg, customValidator, session, resolveUsecase, huntUsecase, autobookUsecase)

	return app, nil
}

// setupLogger configures the logrus logger. Tables go to stdout, so all
// operator notices stay on stderr.
func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)
}

// Run executes the CLI until completion or an operator interrupt and
// returns the process exit code.
func (app *App) Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.CLI.Command().ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logrus.Error("Abort.")
		} else {
			logrus.Error(err)
		}
	}
	return cli.ExitCode(err)
}
