package driver

import "time"

type SchedulerOpt func(*Scheduler)

func WithTickLength(tickLength time.Duration) SchedulerOpt {
	return func(s *Scheduler) {
		s.tickLength = tickLength
	}
}
