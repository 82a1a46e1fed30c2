package leasing

import (
	"time"
)

// DateLayout is how lease and apartment dates are stored and submitted.
const DateLayout = "2006-01-02"

// Apartment is a rentable unit, keyed by its apartment number.
// Occupancy keeps its column default; nothing derives or updates it.
type Apartment struct {
	ApartmentNumber int64      `gorm:"column:apartment_number"`
	ApartmentType   string     `gorm:"column:apartment_type"`
	Rent            float64    `gorm:"column:rent"`
	Occupancy       int64      `gorm:"column:occupancy"`
	CheckInDate     *time.Time `gorm:"column:check_in_date"`
	CheckOutDate    *time.Time `gorm:"column:check_out_date"`
}

// Tenant is a person who can hold leases. Email and phone are unique.
type Tenant struct {
	TenantID int64  `gorm:"column:tenant_id"`
	Name     string `gorm:"column:name"`
	Email    string `gorm:"column:email"`
	Phone    string `gorm:"column:phone"`
}

// Lease links one tenant to one apartment for a date range.
type Lease struct {
	LeaseID         int64     `gorm:"column:lease_id"`
	TenantID        int64     `gorm:"column:tenant_id"`
	ApartmentNumber int64     `gorm:"column:apartment_number"`
	CheckInDate     time.Time `gorm:"column:check_in_date"`
	CheckOutDate    time.Time `gorm:"column:check_out_date"`
}

// FormatDate renders a stored date, or "" when it is unset.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func dateParam(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateLayout)
}

func optionalDateParam(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateParam(*t)
}
