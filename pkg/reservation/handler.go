package reservation

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/musec/clowder/internal/errdef"
	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/pkg/model"
)

func NewHandler(reservationService reservationService) Handler {
	return Handler{
		reservationService: reservationService,
	}
}

type Handler struct {
	reservationService reservationService
}

type reservationService interface {
	Create(ctx context.Context, username, machineName string, start time.Time, end *time.Time, pxePath, nfsRoot string) (*model.Reservation, error)
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	FindAll(ctx context.Context, onlyActive bool) ([]*model.Reservation, error)
	FindForMachine(ctx context.Context, machineName string) ([]*model.Reservation, error)
	FindForUser(ctx context.Context, username string) ([]*model.Reservation, error)
	End(ctx context.Context, id uint) (*model.Reservation, error)
}

type CreateReservationRequest struct {
	Username string `json:"username" binding:"required"`
	Machine  string `json:"machine" binding:"required"`

	// Dates is the human-entered range, e.g.
	// "09:00-03:30 2 Jan 2026 - 17:00-03:30 9 Jan 2026".
	Dates string `json:"dates" binding:"required,daterange"`

	PxePath string `json:"pxePath"`
	NfsRoot string `json:"nfsRoot"`
}

// Create schedules a new reservation.
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /reservations createReservation
	//
	// Create reservation
	//
	// Reserve a machine for a user over a date range
	//
	// responses:
	//   201: Reservation
	//   400: Error
	//   401: Error
	//   404: Error
	//   415: Error
	var request CreateReservationRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	start, end, err := ParseDateRange(request.Dates)
	if err != nil {
		_ = c.Error(err)
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(),
		request.Username, request.Machine, start, &end, request.PxePath, request.NfsRoot)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// ReservationDetails is a reservation plus its derived lifecycle state, so
// clients need not re-derive it: the best-known end time, whether it is
// currently active, and whether to offer the end affordance.
// swagger:model
type ReservationDetails struct {
	*model.Reservation
	EffectiveFinish *time.Time `json:"effectiveFinish,omitempty"`
	Active          bool       `json:"active"`
	CanEnd          bool       `json:"canEnd"`
}

// FindByID returns a single reservation with its machine and user.
func (h Handler) FindByID(c *gin.Context) {
	// swagger:route GET /reservations/{id} findReservationById
	//
	// Find reservation
	//
	// responses:
	//   200: ReservationDetails
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, ReservationDetails{
		Reservation:     reservation,
		EffectiveFinish: reservation.EffectiveFinish(),
		Active:          reservation.ActiveAt(now),
		CanEnd:          reservation.CanEnd(now),
	})
}

// FindAll returns reservations, all of them or only the currently active ones.
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /reservations findAllReservations
	//
	// Find reservations
	//
	// Find all reservations, or only currently active ones with ?filter=active
	//
	// responses:
	//   200: []Reservation
	//   400: Error
	//   401: Error
	onlyActive := false
	switch filter := c.Query("filter"); filter {
	case "", "all":
	case "active":
		onlyActive = true
	default:
		_ = c.Error(errdef.NewBadRequest("unknown filter %q, expected \"all\" or \"active\"", filter))
		return
	}

	reservations, err := h.reservationService.FindAll(c.Request.Context(), onlyActive)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// FindForMachine returns a machine's reservations and the users that made them.
func (h Handler) FindForMachine(c *gin.Context) {
	// swagger:route GET /machines/{name}/reservations findReservationsForMachine
	//
	// Find a machine's reservations
	//
	// responses:
	//   200: []Reservation
	//   401: Error
	//   404: Error
	reservations, err := h.reservationService.FindForMachine(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// FindForUser returns a user's reservations and the machines they reserved.
func (h Handler) FindForUser(c *gin.Context) {
	// swagger:route GET /users/{username}/reservations findReservationsForUser
	//
	// Find a user's reservations
	//
	// responses:
	//   200: []Reservation
	//   401: Error
	//   404: Error
	reservations, err := h.reservationService.FindForUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// End marks a reservation as concluded right now.
func (h Handler) End(c *gin.Context) {
	// swagger:route POST /reservations/{id}/end endReservation
	//
	// End reservation
	//
	// responses:
	//   200: Reservation
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.End(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
