package rest

import (
	"context"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/amboy"
	"github.com/pkg/errors"
)

// Service is the daemon's admin API: board status, spend reporting,
// and on-demand housekeeping runs.
type Service struct {
	Port        int
	Prefix      string
	Environment doshmon.Environment
	Conf        *model.BudgetConfig

	// internal settings
	queue amboy.Queue
	app   *gimlet.APIApp
}

func (s *Service) Validate() error {
	var err error

	if s.Environment == nil {
		return errors.New("must specify an environment")
	}

	if s.Conf == nil || s.Conf.IsNil() {
		return errors.New("must specify a populated budget configuration")
	}

	if s.queue == nil {
		s.queue, err = s.Environment.GetQueue()
		if err != nil {
			return errors.Wrap(err, "problem getting queue")
		}
		if s.queue == nil {
			return errors.New("no queue defined")
		}
	}

	if s.app == nil {
		s.app = gimlet.NewApp()
	}

	if s.Port == 0 {
		s.Port = 3000
	}

	if err := s.app.SetPort(s.Port); err != nil {
		return errors.WithStack(err)
	}

	if s.Prefix != "" {
		s.app.SetPrefix(s.Prefix)
	}

	return nil
}

// Start runs the queue and the API listener, blocking until the
// context is canceled.
func (s *Service) Start(ctx context.Context) error {
	if s.queue == nil || s.app == nil {
		return errors.New("application is not valid")
	}

	s.addRoutes()

	if !s.queue.Info().Started {
		if err := s.queue.Start(ctx); err != nil {
			return errors.Wrap(err, "problem starting queue")
		}
	}

	if err := s.app.Resolve(); err != nil {
		return errors.Wrap(err, "problem resolving routes")
	}

	return s.app.Run(ctx)
}

func (s *Service) addRoutes() {
	s.app.AddRoute("/status").Version(1).Get().Handler(s.statusHandler)
	s.app.AddRoute("/spend").Version(1).Get().Handler(s.spendHandler)
	s.app.AddRoute("/housekeeping").Version(1).Post().Handler(s.runHousekeeping)
}
