package ops

import (
	"testing"
	"time"
)

func TestGetSystemState(t *testing.T) {
	env, _, _ := newTestEnv(t)
	loc := time.FixedZone("CEST", 2*3600)
	env.Now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 30, 0, 0, loc)
	}

	state := GetSystemState(env)

	if state.Time != "2026-08-30T14:30:00+02:00" {
		t.Errorf("Time = %q", state.Time)
	}
	if state.Date != "2026-08-30" {
		t.Errorf("Date = %q", state.Date)
	}
	if state.Weekday != "Sunday" {
		t.Errorf("Weekday = %q", state.Weekday)
	}
	if state.Timezone != "CEST" || state.OffsetSeconds != 7200 {
		t.Errorf("Timezone = %q offset = %d", state.Timezone, state.OffsetSeconds)
	}
}
