package handler

import (
	"net/http"

	"fleet/internal/delivery/http/middleware"
	"fleet/internal/delivery/http/response"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReservationHandler holds dependencies for reservation lifecycle handlers.
type ReservationHandler struct {
	uc usecase.ReservationUsecase
}

// NewReservationHandler is the constructor for ReservationHandler, injected by Fx.
func NewReservationHandler(uc usecase.ReservationUsecase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

type createReservationRequest struct {
	CarID     string `json:"car_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// Create books a car for the authenticated account.
func (h *ReservationHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reservation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("car_id must be a valid id")
	}
	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}

	reservation, err := h.uc.Create(c.Request().Context(), principal, &usecase.CreateReservationInput{
		CarID:     carID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toReservationResponse(reservation), "Reservation created")
}

// List returns reservations visible to the caller. Staff see everyone's,
// other accounts only their own.
func (h *ReservationHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	input := &usecase.ListReservationsInput{
		Status:  c.QueryParam("status"),
		Search:  c.QueryParam("search"),
		OrderBy: c.QueryParam("order_by"),
		Desc:    c.QueryParam("desc") == "true",
	}

	reservations, err := h.uc.List(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReservationResponses(reservations), "")
}

// Mine returns the caller's own reservations, regardless of staff status.
func (h *ReservationHandler) Mine(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	input := &usecase.ListReservationsInput{
		Status:  c.QueryParam("status"),
		OrderBy: c.QueryParam("order_by"),
		Desc:    c.QueryParam("desc") == "true",
		OnlyOwn: true,
	}

	reservations, err := h.uc.List(c.Request().Context(), principal, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReservationResponses(reservations), "")
}

// Get returns a single reservation visible to the caller.
func (h *ReservationHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	reservation, err := h.uc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReservationResponse(reservation), "")
}

type updateReservationRequest struct {
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	CarID     *string `json:"car_id"`
}

// Update rebooks a reservation. Price and coverage are recomputed from
// scratch; moving to another car is a staff-only operation.
func (h *ReservationHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reservation input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return err
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return err
	}

	input := &usecase.UpdateReservationInput{
		StartDate: startDate,
		EndDate:   endDate,
	}
	if req.CarID != nil && *req.CarID != "" {
		carID, err := uuid.Parse(*req.CarID)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("car_id must be a valid id")
		}
		input.CarID = &carID
	}

	reservation, err := h.uc.Update(c.Request().Context(), principal, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toReservationResponse(reservation), "Reservation updated")
}

type deleteReservationRequest struct {
	Password string `json:"password"`
}

// Delete cancels a reservation. Owners confirm with their password and may
// only cancel bookings that have not ended; staff delete without either check.
func (h *ReservationHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req deleteReservationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.uc.Delete(c.Request().Context(), principal, id, req.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reservation deleted")
}
