package ops

import "time"

// SystemState is a snapshot of the host clock and timezone. Pure: reading
// it touches no stored state.
type SystemState struct {
	Time          string `json:"time"`
	Date          string `json:"date"`
	Weekday       string `json:"weekday"`
	Timezone      string `json:"timezone"`
	OffsetSeconds int    `json:"utc_offset_seconds"`
}

// GetSystemState reports the current time and timezone.
func GetSystemState(env *Env) *SystemState {
	now := env.Now()
	zone, offset := now.Zone()
	return &SystemState{
		Time:          now.Format(time.RFC3339),
		Date:          now.Format("2006-01-02"),
		Weekday:       now.Weekday().String(),
		Timezone:      zone,
		OffsetSeconds: offset,
	}
}
