package repository

import (
	"fmt"
	"sync"
	"time"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
)

// CalibrationWindow is how long after the session open the 30 minute range
// accumulates before the levels lock.
const CalibrationWindow = 30 * time.Minute

// SessionScheduleRepository resolves session timetables from the configured
// session catalog. Resolve always returns the most recently opened instance
// of a session, which may already be closed.
type SessionScheduleRepository interface {
	List(now time.Time) ([]dto.SessionSchedule, error)
	Resolve(sessionID string, now time.Time) (dto.SessionSchedule, error)
}

type sessionScheduleRepository struct {
	sessions []config.Session

	mu        sync.Mutex
	locations map[string]*time.Location
}

func NewSessionScheduleRepository(cfg *config.Config) SessionScheduleRepository {
	return &sessionScheduleRepository{
		sessions:  cfg.Sessions,
		locations: make(map[string]*time.Location),
	}
}

func (r *sessionScheduleRepository) List(now time.Time) ([]dto.SessionSchedule, error) {
	out := make([]dto.SessionSchedule, 0, len(r.sessions))
	for _, s := range r.sessions {
		sched, err := r.build(s, now)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, nil
}

func (r *sessionScheduleRepository) Resolve(sessionID string, now time.Time) (dto.SessionSchedule, error) {
	for _, s := range r.sessions {
		if s.ID == sessionID {
			return r.build(s, now)
		}
	}
	return dto.SessionSchedule{}, fmt.Errorf("unknown session %q", sessionID)
}

func (r *sessionScheduleRepository) build(s config.Session, now time.Time) (dto.SessionSchedule, error) {
	loc, err := r.location(s.TZ)
	if err != nil {
		return dto.SessionSchedule{}, err
	}

	local := now.In(loc)
	open := time.Date(local.Year(), local.Month(), local.Day(), s.OpenHour, s.OpenMinute, 0, 0, loc)
	if local.Before(open) {
		open = open.AddDate(0, 0, -1)
	}
	closeTS := time.Date(open.Year(), open.Month(), open.Day(), s.CloseHour, 0, 0, 0, loc)
	if !closeTS.After(open) {
		closeTS = closeTS.AddDate(0, 0, 1)
	}

	return dto.SessionSchedule{
		ID:             s.ID,
		Name:           s.Name,
		TZ:             s.TZ,
		StartTS:        open.UTC(),
		CalibrationEnd: open.Add(CalibrationWindow).UTC(),
		CloseTS:        closeTS.UTC(),
		DateKey:        open.Format("2006-01-02"),
	}, nil
}

func (r *sessionScheduleRepository) location(tz string) (*time.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if loc, ok := r.locations[tz]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load session timezone %q: %w", tz, err)
	}
	r.locations[tz] = loc
	return loc, nil
}
