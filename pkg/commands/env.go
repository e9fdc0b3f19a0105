package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/notify"
	"tableflip.dev/planner/pkg/store"
)

// env is the loaded configuration, store and task service shared by commands.
type env struct {
	cfg   store.Config
	store store.Persistence
	svc   *app.Service
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc := &app.Service{Store: p}
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	return &env{cfg: cfg, store: p, svc: svc}, nil
}

// scheduler restores the saved alert preferences. Alerts stay off when the
// terminal cannot show them even if they were saved as on.
func (e *env) scheduler() *notify.Scheduler {
	s := notify.NewScheduler(notify.DetectPermission(e.cfg.Permission(), os.Stdout), e.cfg.PollInterval())

	lead, err := e.store.NotificationLeadTime()
	switch {
	case err == nil:
		if err := s.SetLeadTime(lead); err != nil {
			fmt.Fprintf(os.Stderr, "commands: ignoring saved lead time: %v\n", err)
		}
	case !errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(os.Stderr, "commands: reading lead time: %v\n", err)
	}

	on, err := e.store.NotificationsEnabled()
	switch {
	case err == nil:
		if on {
			if err := s.SetEnabled(true); err != nil {
				fmt.Fprintf(os.Stderr, "commands: alerts saved as on but unavailable: %v\n", err)
			}
		}
	case !errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(os.Stderr, "commands: reading alert setting: %v\n", err)
	}
	return s
}

// reloadOnChange reloads the service whenever another process rewrites
// the task list.
func (e *env) reloadOnChange(ctx context.Context) error {
	events, err := e.store.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range events {
			if ev.Key != store.KeyTasks {
				continue
			}
			if err := e.svc.Load(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "commands: reloading tasks: %v\n", err)
			}
		}
	}()
	return nil
}
