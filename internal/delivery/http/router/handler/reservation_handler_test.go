package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReservationUsecase struct {
	mock.Mock
}

func (m *mockReservationUsecase) Create(ctx context.Context, principal entity.Principal, input *usecase.CreateReservationInput) (*entity.Reservation, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (m *mockReservationUsecase) List(ctx context.Context, principal entity.Principal, input *usecase.ListReservationsInput) ([]*entity.Reservation, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Reservation), args.Error(1)
}

func (m *mockReservationUsecase) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Reservation, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (m *mockReservationUsecase) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, input *usecase.UpdateReservationInput) (*entity.Reservation, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Reservation), args.Error(1)
}

func (m *mockReservationUsecase) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID, password string) error {
	args := m.Called(ctx, principal, id, password)

	return args.Error(0)
}

type echoValidatorStub struct{}

func (echoValidatorStub) Validate(i any) error { return nil }

func newReservationContext(t *testing.T, method, target, body string, principal entity.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = echoValidatorStub{}

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", principal)

	return c, rec
}

func TestReservationHandler_Create(t *testing.T) {
	principal := entity.Principal{AccountID: uuid.New()}
	carID := uuid.New()

	uc := new(mockReservationUsecase)
	uc.On("Create", mock.Anything, principal, mock.MatchedBy(func(input *usecase.CreateReservationInput) bool {
		return input.CarID == carID &&
			input.StartDate.Equal(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)) &&
			input.EndDate.Equal(time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC))
	})).Return(&entity.Reservation{
		ID:         uuid.New(),
		StartDate:  time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC),
		Coverage:   entity.CoverageStandard,
		Rate:       decimal.RequireFromString("50.00"),
		TotalPrice: decimal.RequireFromString("250.00"),
		AccountID:  principal.AccountID,
		CarID:      carID,
	}, nil)

	body := `{"car_id":"` + carID.String() + `","start_date":"2026-10-01","end_date":"2026-10-05"}`
	c, rec := newReservationContext(t, http.MethodPost, "/reservations", body, principal)

	handler := NewReservationHandler(uc)
	require.NoError(t, handler.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_price":"250.00"`)
	assert.Contains(t, rec.Body.String(), `"coverage":"Standard"`)
	uc.AssertExpectations(t)
}

func TestReservationHandler_CreateRejectsMalformedDate(t *testing.T) {
	principal := entity.Principal{AccountID: uuid.New()}

	uc := new(mockReservationUsecase)
	body := `{"car_id":"` + uuid.New().String() + `","start_date":"01/10/2026","end_date":"2026-10-05"}`
	c, _ := newReservationContext(t, http.MethodPost, "/reservations", body, principal)

	handler := NewReservationHandler(uc)
	err := handler.Create(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "start_date")
	uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler_ListPassesFilters(t *testing.T) {
	principal := entity.Principal{AccountID: uuid.New(), Staff: true}

	uc := new(mockReservationUsecase)
	uc.On("List", mock.Anything, principal, &usecase.ListReservationsInput{
		Status:  "upcoming",
		Search:  "FL-101",
		OrderBy: "end_date",
		Desc:    true,
	}).Return([]*entity.Reservation{}, nil)

	c, rec := newReservationContext(t, http.MethodGet,
		"/reservations?status=upcoming&search=FL-101&order_by=end_date&desc=true", "", principal)

	handler := NewReservationHandler(uc)
	require.NoError(t, handler.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestReservationHandler_DeleteForwardsPassword(t *testing.T) {
	principal := entity.Principal{AccountID: uuid.New()}
	reservationID := uuid.New()

	uc := new(mockReservationUsecase)
	uc.On("Delete", mock.Anything, principal, reservationID, "secret-pass").Return(nil)

	c, rec := newReservationContext(t, http.MethodDelete, "/reservations/"+reservationID.String(),
		`{"password":"secret-pass"}`, principal)
	c.SetParamNames("id")
	c.SetParamValues(reservationID.String())

	handler := NewReservationHandler(uc)
	require.NoError(t, handler.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}
