package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Listeners []ListenerConfig `json:"listeners"`
	Nats      NatsConfig       `json:"nats"`
	Content   ContentConfig    `json:"content"`
	World     WorldConfig      `json:"world"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Nats.validate())
	el.Add(c.Content.validate())
	el.Add(c.World.validate())

	return el.Err()
}

type WorldConfig struct {
	// StartLocation is where newly connected players appear.
	StartLocation string `json:"start_location"`

	// TickLength is the real-time length of one game time unit.
	TickLength string `json:"tick_length,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartLocation == "" {
		el.Add(fmt.Errorf("start_location is required"))
	}

	if c.TickLength != "" {
		_, err := time.ParseDuration(c.TickLength)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_length: %w", err))
		}
	}

	return el.Err()
}
