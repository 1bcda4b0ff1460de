package handler

import (
	"net/http"

	"fleet/internal/delivery/http/response"
	"fleet/internal/domain/entity"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the five name-only lookup tables under one route
// shape: /catalog/:kind and /catalog/:kind/:id.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func lookupKindParam(c echo.Context) entity.LookupKind {
	return entity.LookupKind(c.Param("kind"))
}

func idParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return id, nil
}

// List returns every entry of one lookup table.
func (h *CatalogHandler) List(c echo.Context) error {
	lookups, err := h.uc.ListLookups(c.Request().Context(), lookupKindParam(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLookupResponses(lookups), "")
}

// Get returns a single lookup entry.
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	lookup, err := h.uc.GetLookup(c.Request().Context(), lookupKindParam(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLookupResponse(lookup), "")
}

type lookupRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create adds a new entry to one lookup table.
func (h *CatalogHandler) Create(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid catalog input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lookup, err := h.uc.CreateLookup(c.Request().Context(), lookupKindParam(c), req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toLookupResponse(lookup), "Catalog entry created")
}

// Update renames an existing entry.
func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid catalog input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lookup, err := h.uc.UpdateLookup(c.Request().Context(), lookupKindParam(c), id, req.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toLookupResponse(lookup), "Catalog entry updated")
}

// Delete removes an entry.
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteLookup(c.Request().Context(), lookupKindParam(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Catalog entry deleted")
}
