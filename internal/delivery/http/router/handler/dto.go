// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
)

// parseDate parses a calendar date in ISO form (2006-01-02).
func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrValidationFailed.WithDetails(field + " must be a date in YYYY-MM-DD form")
	}

	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// accountResponse is the public view of an account. The password hash
// never leaves the service.
type accountResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	BirthDate     string `json:"birth_date"`
	LicenseNumber string `json:"license_number,omitempty"`
	Staff         bool   `json:"staff"`
	CreatedAt     string `json:"created_at"`
}

func toAccountResponse(a *entity.Account) *accountResponse {
	return &accountResponse{
		ID:            a.ID.String(),
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		BirthDate:     formatDate(a.BirthDate),
		LicenseNumber: a.LicenseNumber,
		Staff:         a.Staff,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

type lookupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toLookupResponse(l *entity.Lookup) *lookupResponse {
	return &lookupResponse{ID: l.ID.String(), Name: l.Name}
}

func toLookupResponses(lookups []*entity.Lookup) []*lookupResponse {
	out := make([]*lookupResponse, 0, len(lookups))
	for _, l := range lookups {
		out = append(out, toLookupResponse(l))
	}

	return out
}

func toLookupRef(l *entity.Lookup) *lookupResponse {
	if l == nil {
		return nil
	}

	return toLookupResponse(l)
}

type vehicleModelResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Brand        *lookupResponse `json:"brand,omitempty"`
	VehicleType  *lookupResponse `json:"vehicle_type,omitempty"`
	FuelType     *lookupResponse `json:"fuel_type,omitempty"`
	Transmission *lookupResponse `json:"transmission,omitempty"`
	Seats        int             `json:"seats"`
	DailyPrice   string          `json:"daily_price"`
}

func toVehicleModelResponse(m *entity.VehicleModel) *vehicleModelResponse {
	return &vehicleModelResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Brand:        toLookupRef(m.Brand),
		VehicleType:  toLookupRef(m.VehicleType),
		FuelType:     toLookupRef(m.FuelType),
		Transmission: toLookupRef(m.Transmission),
		Seats:        m.Seats,
		DailyPrice:   m.DailyPrice.StringFixed(2),
	}
}

func toVehicleModelResponses(models []*entity.VehicleModel) []*vehicleModelResponse {
	out := make([]*vehicleModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, toVehicleModelResponse(m))
	}

	return out
}

type carResponse struct {
	ID           string                `json:"id"`
	LicensePlate string                `json:"license_plate"`
	Model        *vehicleModelResponse `json:"model,omitempty"`
	Color        *lookupResponse       `json:"color,omitempty"`
	Mileage      int                   `json:"mileage"`
}

func toCarResponse(c *entity.Car) *carResponse {
	resp := &carResponse{
		ID:           c.ID.String(),
		LicensePlate: c.LicensePlate,
		Color:        toLookupRef(c.Color),
		Mileage:      c.Mileage,
	}
	if c.Model != nil {
		resp.Model = toVehicleModelResponse(c.Model)
	}

	return resp
}

func toCarResponses(cars []*entity.Car) []*carResponse {
	out := make([]*carResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, toCarResponse(c))
	}

	return out
}

type reservationResponse struct {
	ID          string       `json:"id"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	Coverage    string       `json:"coverage"`
	Rate        string       `json:"rate"`
	TotalPrice  string       `json:"total_price"`
	RenterID    string       `json:"renter_id"`
	RenterName  string       `json:"renter_name,omitempty"`
	RenterEmail string       `json:"renter_email,omitempty"`
	Car         *carResponse `json:"car,omitempty"`
}

func toReservationResponse(r *entity.Reservation) *reservationResponse {
	resp := &reservationResponse{
		ID:         r.ID.String(),
		StartDate:  formatDate(r.StartDate),
		EndDate:    formatDate(r.EndDate),
		Coverage:   string(r.Coverage),
		Rate:       r.Rate.StringFixed(2),
		TotalPrice: r.TotalPrice.StringFixed(2),
		RenterID:   r.AccountID.String(),
	}
	if r.Renter != nil {
		resp.RenterName = r.Renter.FullName()
		resp.RenterEmail = r.Renter.Email
	}
	if r.Car != nil {
		resp.Car = toCarResponse(r.Car)
	}

	return resp
}

func toReservationResponses(reservations []*entity.Reservation) []*reservationResponse {
	out := make([]*reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toReservationResponse(r))
	}

	return out
}
