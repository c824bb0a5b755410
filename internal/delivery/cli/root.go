package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bonk1990/gydytojas/config"
	"github.com/bonk1990/gydytojas/internal/domain/entity"
	"github.com/bonk1990/gydytojas/internal/infrastructure/portal"
	"github.com/bonk1990/gydytojas/internal/usecase"
	"github.com/bonk1990/gydytojas/pkg/timeparse"
	"github.com/bonk1990/gydytojas/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI is the command line delivery layer: it turns flags into search
// criteria, drives the usecases and renders the results.
type CLI struct {
	log      *logrus.Logger
	cfg      *config.Config
	validate *validator.CustomValidator
	session  *portal.Session
	resolve  usecase.ResolveFiltersUsecase
	hunt     usecase.HuntUsecase
	autobook usecase.AutobookUsecase
}

func New(
	log *logrus.Logger,
	cfg *config.Config,
	validate *validator.CustomValidator,
	session *portal.Session,
	resolve usecase.ResolveFiltersUsecase,
	hunt usecase.HuntUsecase,
	autobook usecase.AutobookUsecase,
) *CLI {
	return &CLI{
		log:      log,
		cfg:      cfg,
		validate: validate,
		session:  session,
		resolve:  resolve,
		hunt:     hunt,
		autobook: autobook,
	}
}

// CollisionPresenter renders colliding appointments to stderr, keeping
// stdout clean for the visit table.
type CollisionPresenter struct{}

// ShowCollisions implements usecase.ConflictPresenter.
func (CollisionPresenter) ShowCollisions(collisions []entity.ConflictCandidate) {
	renderCollisions(os.Stderr, collisions)
}

type flagValues struct {
	region     string
	username   string
	password   string
	doctors    []string
	clinics    []string
	start      string
	end        string
	margin     string
	timeRange  string
	interval   int
	autobook   bool
	reschedule bool
	keepGoing  bool
	diagnostic bool
}

// Command builds the root command with the full flag surface.
func (c *CLI) Command() *cobra.Command {
	flags := &flagValues{}

	cmd := &cobra.Command{
		Use:           "gydytojas [flags] specialization...",
		Short:         "Check Medicover visit availability",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.region, "region", "r", "", "region")
	f.StringVarP(&flags.username, "username", "u", "", "user name used for login")
	f.StringVarP(&flags.password, "password", "p", "", "password used for login")
	f.StringArrayVarP(&flags.doctors, "doctor", "d", nil, "desired doctor, multiple can be given")
	f.StringArrayVarP(&flags.clinics, "clinic", "c", nil, "desired clinic, multiple can be given")
	f.StringVarP(&flags.start, "start", "f", "2000-01-01", "search period start time")
	f.StringVarP(&flags.end, "end", "t", "2100-01-01", "search period end time")
	f.StringVarP(&flags.margin, "margin", "m", "1h", "minimum time from now till the visit")
	f.BoolVarP(&flags.autobook, "autobook", "a", false, "automatically book the first available visit")
	f.BoolVarP(&flags.reschedule, "reschedule", "R", false, "reschedule existing appointments if needed when autobooking")
	f.BoolVarP(&flags.keepGoing, "keep-going", "k", false, "retry until a visit is found or booked")
	f.BoolVar(&flags.diagnostic, "diagnostic-procedure", false, "search for diagnostic procedures instead of consultations")
	f.IntVarP(&flags.interval, "interval", "i", 5,
		"interval between retries in seconds, use negative values to sleep a random time up to the given amount")
	f.StringVar(&flags.timeRange, "time", "", "acceptable visit time range, e.g. 8:00-14:30")

	return cmd
}

func (c *CLI) run(ctx context.Context, flags *flagValues, specializations []string) error {
	criteria, err := c.buildCriteria(flags, specializations)
	if err != nil {
		return err
	}

	username, password, err := c.credentials(flags)
	if err != nil {
		return err
	}

	if err := c.session.Login(ctx, username, password); err != nil {
		return err
	}

	filterSets, err := c.resolve.ResolveAll(ctx, criteria)
	if err != nil {
		return err
	}

	c.log.Info("Searching for visits...")
	result, err := c.hunt.Hunt(ctx, criteria, filterSets)
	if err != nil {
		return err
	}

	renderVisits(os.Stdout, result.Unique)

	if criteria.Autobook {
		c.log.Info("Autobooking first visit...")
		if err := c.autobook.Book(ctx, result.Best, criteria.Reschedule); err != nil {
			return err
		}
		c.log.Info("Autobooking successful.")
	}

	return nil
}

func (c *CLI) buildCriteria(flags *flagValues, specializations []string) (*entity.SearchCriteria, error) {
	start, err := timeparse.ParseDateTime(flags.start, false)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := timeparse.ParseDateTime(flags.end, true)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}
	if end.Before(start) {
		return nil, errors.New("--end is before --start")
	}
	margin, err := timeparse.ParseDuration(flags.margin)
	if err != nil {
		return nil, fmt.Errorf("invalid --margin: %w", err)
	}

	var window *timeparse.TimeRange
	if flags.timeRange != "" {
		window, err = timeparse.ParseTimeRange(flags.timeRange)
		if err != nil {
			return nil, fmt.Errorf("invalid --time: %w", err)
		}
	}

	serviceType := entity.ServiceTypeConsultation
	if flags.diagnostic {
		serviceType = entity.ServiceTypeDiagnostic
	}

	criteria := &entity.SearchCriteria{
		Region:          flags.region,
		ServiceType:     serviceType,
		Specializations: specializations,
		Doctors:         flags.doctors,
		Clinics:         flags.clinics,
		Start:           start,
		End:             end,
		Margin:          margin,
		DailyWindow:     window,
		Autobook:        flags.autobook,
		Reschedule:      flags.reschedule,
		KeepGoing:       flags.keepGoing,
		Interval:        time.Duration(flags.interval) * time.Second,
	}

	if err := c.validate.Validate(criteria); err != nil {
		return nil, errors.New(c.validate.FormatValidationErrors(err))
	}
	return criteria, nil
}

// credentials resolves the login pair from flags, then the environment,
// then interactive prompts.
func (c *CLI) credentials(flags *flagValues) (string, string, error) {
	username := flags.username
	if username == "" {
		username = c.cfg.Auth.Username
	}
	if username == "" {
		var err error
		if username, err = promptUsername(); err != nil {
			return "", "", err
		}
	}

	password := flags.password
	if password == "" {
		password = c.cfg.Auth.Password
	}
	if password == "" {
		var err error
		if password, err = promptPassword(); err != nil {
			return "", "", err
		}
	}

	return username, password, nil
}
