package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/pkg/model"
)

func TestHandler_Create(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())

	start := time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC)
	end := time.Date(2026, 1, 9, 20, 30, 0, 0, time.UTC)
	reservation := &model.Reservation{ID: 1, UserID: 2, MachineID: 3, ScheduledStart: start, ScheduledEnd: &end}

	service := &mockReservationService{}
	service.
		On("Create", "alice", "zint", start, &end, "", "").
		Return(reservation, nil)
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/reservations", &CreateReservationRequest{
		Username: "alice",
		Machine:  "zint",
		Dates:    "09:00-03:30 2 Jan 2026 - 17:00-03:30 9 Jan 2026",
	})

	h.Create(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandler_Create_MalformedDateRange(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())

	service := &mockReservationService{}
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/reservations", &CreateReservationRequest{
		Username: "alice",
		Machine:  "zint",
		Dates:    "sometime next week",
	})

	h.Create(c)

	require.Len(t, c.Errors.Errors(), 1)
	// Nothing was persisted.
	service.AssertNotCalled(t, "Create")
}

func TestHandler_Create_UnparseableDates(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())

	service := &mockReservationService{}
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/reservations", &CreateReservationRequest{
		Username: "alice",
		Machine:  "zint",
		Dates:    "early Jan - late Jan",
	})

	h.Create(c)

	require.Len(t, c.Errors.Errors(), 1)
	service.AssertNotCalled(t, "Create")
}

// Overlapping reservations for the same machine are both accepted: there is
// no conflict detection anywhere in the create path. If conflict detection is
// ever added intentionally, this test must change with it.
func TestHandler_Create_OverlappingReservationsBothAccepted(t *testing.T) {
	require.NoError(t, handler.RegisterValidation())

	service := &mockReservationService{}
	service.
		On("Create", mock.Anything, "zint", mock.Anything, mock.Anything, "", "").
		Return(&model.Reservation{MachineID: 3}, nil).
		Twice()
	h := NewHandler(service)

	for _, body := range []*CreateReservationRequest{
		{Username: "alice", Machine: "zint", Dates: "09:00+00:00 2 Jan 2026 - 17:00+00:00 9 Jan 2026"},
		{Username: "bob", Machine: "zint", Dates: "09:00+00:00 5 Jan 2026 - 17:00+00:00 6 Jan 2026"},
	} {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		c.Request = newPost(t, "/reservations", body)

		h.Create(c)

		require.Len(t, c.Errors.Errors(), 0)
		assert.Equal(t, http.StatusCreated, recorder.Code)
	}

	service.AssertExpectations(t)
}

func TestHandler_FindByID(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	reservation := &model.Reservation{ID: 7, ScheduledStart: yesterday}

	service := &mockReservationService{}
	service.
		On("FindByID", uint(7)).
		Return(reservation, nil)
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newGet(t, "/reservations/7")
	c.AddParam("id", "7")

	h.FindByID(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var details ReservationDetails
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &details))
	assert.Equal(t, uint(7), details.ID)
	assert.Nil(t, details.EffectiveFinish, "open-ended reservation has no finish")
	assert.True(t, details.Active, "started, unended reservation is active")
	assert.True(t, details.CanEnd, "started, unended reservation can be ended")
	service.AssertExpectations(t)
}

func TestHandler_FindByID_Ended(t *testing.T) {
	now := time.Now()
	start := now.Add(-48 * time.Hour)
	ended := now.Add(-24 * time.Hour)
	reservation := &model.Reservation{ID: 8, ScheduledStart: start, ActualEnd: &ended}

	service := &mockReservationService{}
	service.
		On("FindByID", uint(8)).
		Return(reservation, nil)
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newGet(t, "/reservations/8")
	c.AddParam("id", "8")

	h.FindByID(c)

	require.Len(t, c.Errors.Errors(), 0)

	var details ReservationDetails
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &details))
	require.NotNil(t, details.EffectiveFinish)
	assert.WithinDuration(t, ended, *details.EffectiveFinish, time.Second)
	assert.False(t, details.Active)
	assert.False(t, details.CanEnd)
	service.AssertExpectations(t)
}

func TestHandler_FindAll_Filter(t *testing.T) {
	service := &mockReservationService{}
	service.
		On("FindAll", true).
		Return([]*model.Reservation{}, nil)
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newGet(t, "/reservations?filter=active")

	h.FindAll(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandler_FindAll_UnknownFilter(t *testing.T) {
	service := &mockReservationService{}
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newGet(t, "/reservations?filter=bogus")

	h.FindAll(c)

	require.Len(t, c.Errors.Errors(), 1)
	service.AssertNotCalled(t, "FindAll")
}

func TestHandler_End(t *testing.T) {
	now := time.Now()
	reservation := &model.Reservation{ID: 7, ScheduledStart: now.Add(-time.Hour), ActualEnd: &now}

	service := &mockReservationService{}
	service.
		On("End", uint(7)).
		Return(reservation, nil)
	h := NewHandler(service)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = newPost(t, "/reservations/7/end", nil)
	c.AddParam("id", "7")

	h.End(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

type mockReservationService struct{ mock.Mock }

func (m *mockReservationService) Create(ctx context.Context, username, machineName string, start time.Time, end *time.Time, pxePath, nfsRoot string) (*model.Reservation, error) {
	called := m.Called(username, machineName, start, end, pxePath, nfsRoot)
	return called.Get(0).(*model.Reservation), called.Error(1)
}

func (m *mockReservationService) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	called := m.Called(id)
	return called.Get(0).(*model.Reservation), called.Error(1)
}

func (m *mockReservationService) FindAll(ctx context.Context, onlyActive bool) ([]*model.Reservation, error) {
	called := m.Called(onlyActive)
	return called.Get(0).([]*model.Reservation), called.Error(1)
}

func (m *mockReservationService) FindForMachine(ctx context.Context, machineName string) ([]*model.Reservation, error) {
	called := m.Called(machineName)
	return called.Get(0).([]*model.Reservation), called.Error(1)
}

func (m *mockReservationService) FindForUser(ctx context.Context, username string) ([]*model.Reservation, error) {
	called := m.Called(username)
	return called.Get(0).([]*model.Reservation), called.Error(1)
}

func (m *mockReservationService) End(ctx context.Context, id uint) (*model.Reservation, error) {
	called := m.Called(id)
	return called.Get(0).(*model.Reservation), called.Error(1)
}

func newPost(t *testing.T, path string, jsonBody any) *http.Request {
	body, err := json.Marshal(jsonBody)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	return req
}

func newGet(t *testing.T, path string) *http.Request {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	return req
}
