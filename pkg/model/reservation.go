package model

import "time"

// Reservation is a time-boxed claim on a machine by a user.
//
// A reservation starts in the scheduled state, becomes active once
// ScheduledStart passes, and ends when ActualEnd is stamped. Ending is the
// only mutation a reservation sees; rows are never deleted in normal operation.
type Reservation struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	UserID         uint       `json:"userId"`
	User           User       `json:"user"`
	MachineID      uint       `json:"machineId"`
	Machine        Machine    `json:"machine"`
	ScheduledStart time.Time  `json:"scheduledStart"`
	ScheduledEnd   *time.Time `json:"scheduledEnd,omitempty"`
	ActualEnd      *time.Time `json:"actualEnd,omitempty"`

	// Provisioning metadata consumed by the netboot infrastructure.
	PxePath *string `json:"pxePath,omitempty"`
	NfsRoot *string `json:"nfsRoot,omitempty"`
}

// EffectiveFinish is the best-known end time of the reservation: the scheduled
// end if one was set, else the recorded actual end, else nil (open-ended).
func (r *Reservation) EffectiveFinish() *time.Time {
	if r.ScheduledEnd != nil {
		return r.ScheduledEnd
	}
	if r.ActualEnd != nil {
		return r.ActualEnd
	}
	return nil
}

// ActiveAt reports whether the reservation has started by now and has been
// neither explicitly ended nor implicitly concluded by its scheduled end.
func (r *Reservation) ActiveAt(now time.Time) bool {
	if r.ActualEnd != nil {
		return false
	}
	if r.ScheduledEnd != nil && !r.ScheduledEnd.After(now) {
		return false
	}
	return !r.ScheduledStart.After(now)
}

// CanEnd reports whether the reservation is in a state where ending it makes
// sense: it has started and has not already been ended.
func (r *Reservation) CanEnd(now time.Time) bool {
	return r.ActualEnd == nil && !r.ScheduledStart.After(now)
}
