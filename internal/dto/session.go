package dto

import "time"

type SessionStatus string

const (
	SessionPending     SessionStatus = "PENDING"
	SessionCalibrating SessionStatus = "CALIBRATING"
	SessionActive      SessionStatus = "ACTIVE"
	SessionClosed      SessionStatus = "CLOSED"
)

// SessionSchedule is the resolved UTC timetable for one session day.
type SessionSchedule struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TZ             string    `json:"tz"`
	StartTS        time.Time `json:"start_ts"`
	CalibrationEnd time.Time `json:"calibration_end_ts"`
	CloseTS        time.Time `json:"close_ts"`
	DateKey        string    `json:"date_key"`
}

func (s SessionSchedule) Status(now time.Time) SessionStatus {
	switch {
	case now.Before(s.StartTS):
		return SessionPending
	case now.Before(s.CalibrationEnd):
		return SessionCalibrating
	case now.Before(s.CloseTS):
		return SessionActive
	default:
		return SessionClosed
	}
}

// SessionContext is rebuilt on every request from the schedule and the
// candle supplier; the core never persists it.
type SessionContext struct {
	SessionID          string        `json:"session_id"`
	DateKey            string        `json:"date_key"`
	AnchorTS           int64         `json:"anchor_ts"`
	LockEndTS          int64         `json:"lock_end_ts"`
	Status             SessionStatus `json:"status"`
	Price              float64       `json:"price"`
	R30High            float64       `json:"r30_high"`
	R30Low             float64       `json:"r30_low"`
	SessionOpenPrice   float64       `json:"session_open_price"`
	CalibrationCandles []Candle      `json:"calibration_candles"`
	PostLockCandles    []Candle      `json:"post_lock_candles"`
}
