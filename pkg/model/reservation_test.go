package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/musec/clowder/pkg/model"
)

func TestReservation_EffectiveFinish(t *testing.T) {
	scheduled := time.Date(2026, 1, 9, 17, 0, 0, 0, time.UTC)
	actual := time.Date(2026, 1, 5, 11, 30, 0, 0, time.UTC)

	r := &model.Reservation{}
	assert.Nil(t, r.EffectiveFinish(), "open-ended reservation has no finish")

	r = &model.Reservation{ActualEnd: &actual}
	assert.Equal(t, &actual, r.EffectiveFinish())

	r = &model.Reservation{ScheduledEnd: &scheduled}
	assert.Equal(t, &scheduled, r.EffectiveFinish())

	// Scheduled end takes precedence even when the reservation was ended early.
	r = &model.Reservation{ScheduledEnd: &scheduled, ActualEnd: &actual}
	assert.Equal(t, &scheduled, r.EffectiveFinish())
}

func TestReservation_ActiveAt(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	started := &model.Reservation{ScheduledStart: yesterday}
	assert.True(t, started.ActiveAt(now), "started, open-ended")

	future := &model.Reservation{ScheduledStart: tomorrow}
	assert.False(t, future.ActiveAt(now), "not yet started")

	bounded := &model.Reservation{ScheduledStart: yesterday, ScheduledEnd: &tomorrow}
	assert.True(t, bounded.ActiveAt(now), "within scheduled window")

	expired := &model.Reservation{ScheduledStart: yesterday.Add(-24 * time.Hour), ScheduledEnd: &yesterday}
	assert.False(t, expired.ActiveAt(now), "scheduled end has passed")

	ended := &model.Reservation{ScheduledStart: yesterday, ActualEnd: &now}
	assert.False(t, ended.ActiveAt(now), "explicitly ended")

	atStart := &model.Reservation{ScheduledStart: now}
	assert.True(t, atStart.ActiveAt(now), "active at the exact start instant")
}

func TestReservation_CreatedThenEndedNeverActiveAgain(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	r := &model.Reservation{ScheduledStart: start}
	assert.True(t, r.ActiveAt(start.Add(time.Hour)))

	r.ActualEnd = &end
	assert.False(t, r.ActiveAt(end))
	assert.False(t, r.ActiveAt(end.Add(24*time.Hour)))
}

func TestReservation_CanEnd(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	r := &model.Reservation{ScheduledStart: yesterday}
	assert.True(t, r.CanEnd(now))

	r = &model.Reservation{ScheduledStart: tomorrow}
	assert.False(t, r.CanEnd(now), "cannot end before it starts")

	r = &model.Reservation{ScheduledStart: yesterday, ActualEnd: &yesterday}
	assert.False(t, r.CanEnd(now), "already ended")
}
