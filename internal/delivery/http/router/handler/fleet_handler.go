package handler

import (
	"net/http"

	"fleet/internal/delivery/http/response"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FleetHandler holds dependencies for vehicle model and car handlers.
type FleetHandler struct {
	uc usecase.FleetUsecase
}

// NewFleetHandler is the constructor for FleetHandler, injected by Fx.
func NewFleetHandler(uc usecase.FleetUsecase) *FleetHandler {
	return &FleetHandler{uc: uc}
}

type vehicleModelRequest struct {
	Name           string  `json:"name" validate:"required"`
	BrandID        string  `json:"brand_id" validate:"required"`
	VehicleTypeID  *string `json:"vehicle_type_id"`
	FuelTypeID     *string `json:"fuel_type_id"`
	TransmissionID *string `json:"transmission_id"`
	Seats          int     `json:"seats" validate:"required"`
	DailyPrice     string  `json:"daily_price" validate:"required"`
}

func (req *vehicleModelRequest) toInput() (*usecase.VehicleModelInput, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("brand_id must be a valid id")
	}

	price, err := decimal.NewFromString(req.DailyPrice)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("daily_price must be a decimal number")
	}

	input := &usecase.VehicleModelInput{
		Name:       req.Name,
		BrandID:    brandID,
		Seats:      req.Seats,
		DailyPrice: price,
	}

	for _, ref := range []struct {
		raw   *string
		field string
		dst   **uuid.UUID
	}{
		{req.VehicleTypeID, "vehicle_type_id", &input.VehicleTypeID},
		{req.FuelTypeID, "fuel_type_id", &input.FuelTypeID},
		{req.TransmissionID, "transmission_id", &input.TransmissionID},
	} {
		if ref.raw == nil || *ref.raw == "" {
			continue
		}
		id, err := uuid.Parse(*ref.raw)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(ref.field + " must be a valid id")
		}
		*ref.dst = &id
	}

	return input, nil
}

// ListVehicleModels returns the model catalog.
func (h *FleetHandler) ListVehicleModels(c echo.Context) error {
	models, err := h.uc.ListVehicleModels(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVehicleModelResponses(models), "")
}

// GetVehicleModel returns a single model.
func (h *FleetHandler) GetVehicleModel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	model, err := h.uc.GetVehicleModel(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVehicleModelResponse(model), "")
}

// CreateVehicleModel adds a model to the catalog.
func (h *FleetHandler) CreateVehicleModel(c echo.Context) error {
	var req vehicleModelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vehicle model input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	model, err := h.uc.CreateVehicleModel(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toVehicleModelResponse(model), "Vehicle model created")
}

// UpdateVehicleModel replaces a model's fields.
func (h *FleetHandler) UpdateVehicleModel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req vehicleModelRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vehicle model input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	model, err := h.uc.UpdateVehicleModel(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toVehicleModelResponse(model), "Vehicle model updated")
}

// DeleteVehicleModel removes a model and its cars.
func (h *FleetHandler) DeleteVehicleModel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteVehicleModel(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Vehicle model deleted")
}

type carRequest struct {
	VehicleModelID string  `json:"vehicle_model_id" validate:"required"`
	LicensePlate   string  `json:"license_plate" validate:"required"`
	ColorID        *string `json:"color_id"`
	Mileage        int     `json:"mileage"`
}

func (req *carRequest) toInput() (*usecase.CarInput, error) {
	modelID, err := uuid.Parse(req.VehicleModelID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("vehicle_model_id must be a valid id")
	}

	input := &usecase.CarInput{
		VehicleModelID: modelID,
		LicensePlate:   req.LicensePlate,
		Mileage:        req.Mileage,
	}
	if req.ColorID != nil && *req.ColorID != "" {
		colorID, err := uuid.Parse(*req.ColorID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("color_id must be a valid id")
		}
		input.ColorID = &colorID
	}

	return input, nil
}

// ListCars returns fleet cars, optionally filtered by brand, vehicle type
// or color query parameters.
func (h *FleetHandler) ListCars(c echo.Context) error {
	var filter repository.CarFilter
	for _, q := range []struct {
		param string
		dst   **uuid.UUID
	}{
		{"brand_id", &filter.BrandID},
		{"vehicle_type_id", &filter.VehicleTypeID},
		{"color_id", &filter.ColorID},
	} {
		raw := c.QueryParam(q.param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails(q.param + " must be a valid id")
		}
		*q.dst = &id
	}

	cars, err := h.uc.ListCars(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCarResponses(cars), "")
}

// GetCar returns a single car.
func (h *FleetHandler) GetCar(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	car, err := h.uc.GetCar(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCarResponse(car), "")
}

// CreateCar registers a car in the fleet.
func (h *FleetHandler) CreateCar(c echo.Context) error {
	var req carRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid car input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	car, err := h.uc.CreateCar(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCarResponse(car), "Car created")
}

// UpdateCar replaces a car's fields.
func (h *FleetHandler) UpdateCar(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req carRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid car input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	car, err := h.uc.UpdateCar(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCarResponse(car), "Car updated")
}

// DeleteCar removes a car and its reservations.
func (h *FleetHandler) DeleteCar(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCar(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Car deleted")
}

// AvailableCars returns cars free over the requested inclusive range.
func (h *FleetHandler) AvailableCars(c echo.Context) error {
	from, err := parseDate(c.QueryParam("available_from"), "available_from")
	if err != nil {
		return err
	}
	to, err := parseDate(c.QueryParam("available_to"), "available_to")
	if err != nil {
		return err
	}

	cars, err := h.uc.AvailableCars(c.Request().Context(), from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCarResponses(cars), "")
}
