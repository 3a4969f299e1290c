package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"

	"github.com/kingsmud/kings/internal/action"
	"github.com/kingsmud/kings/internal/driver"
	"github.com/kingsmud/kings/internal/listener"
	"github.com/kingsmud/kings/internal/messaging"
	"github.com/kingsmud/kings/internal/session"
	"github.com/kingsmud/kings/internal/world"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load content and populate the world
	defs, err := cfg.Content.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	store := world.NewStore(defs)
	err = store.Populate()
	if err != nil {
		return nil, fmt.Errorf("populating world: %w", err)
	}

	if _, err := store.Get(cfg.World.StartLocation); err != nil {
		return nil, fmt.Errorf("start location: %w", err)
	}

	// Mailbox bus and delivery
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	courier := messaging.NewCourier(nats, store)

	// Deferred-task scheduler (combat ticks)
	var schedOpts []driver.SchedulerOpt
	if cfg.World.TickLength != "" {
		d, err := time.ParseDuration(cfg.World.TickLength)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_length: %w", err)
		}
		schedOpts = append(schedOpts, driver.WithTickLength(d))
	}
	sched := driver.NewScheduler(schedOpts...)

	// Sessions behind the listeners
	interp := action.NewInterpreter(store, courier, sched)
	sessions := session.NewManager(store, interp, courier, nats, cfg.World.StartLocation)
	cm := listener.NewConnectionManager(sessions)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":      nats,
		"scheduler": sched,
		"listeners": &listeners,
	}, nil
}
