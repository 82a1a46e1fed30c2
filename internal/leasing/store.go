// Package leasing holds the statements behind every page: tenants,
// apartments and the leases between them.
package leasing

import (
	"context"
	"fmt"

	"apartment-manager/internal/database"
)

type Store struct {
	exec *database.Executor
}

func NewStore(exec *database.Executor) *Store {
	return &Store{exec: exec}
}

type insertedID struct {
	ID int64 `gorm:"column:id"`
}

type count struct {
	N int64 `gorm:"column:n"`
}

// -- Tenants --

// AddTenant inserts a tenant. A repeated email or phone fails with an error
// matching database.ErrDuplicate and adds nothing.
func (s *Store) AddTenant(ctx context.Context, name, email, phone string) (*Tenant, error) {
	var row insertedID
	err := s.exec.Select(ctx, &row,
		"INSERT INTO Tenants (name, email, phone) VALUES (?, ?, ?) RETURNING tenant_id AS id",
		name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to add tenant %s: %w", email, err)
	}
	return &Tenant{TenantID: row.ID, Name: name, Email: email, Phone: phone}, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]Tenant, error) {
	tenants := []Tenant{}
	if err := s.exec.Select(ctx, &tenants, "SELECT tenant_id, name, email, phone FROM Tenants ORDER BY tenant_id"); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

// RemoveTenant deletes a tenant by id and reports whether a row went away.
// Removing a missing id is not an error. Leases are left in place.
func (s *Store) RemoveTenant(ctx context.Context, tenantID int64) (bool, error) {
	res, err := s.exec.Execute(ctx, "DELETE FROM Tenants WHERE tenant_id = ?", tenantID)
	if err != nil {
		return false, fmt.Errorf("failed to remove tenant %d: %w", tenantID, err)
	}
	return res.RowsAffected > 0, nil
}

// -- Apartments --

func (s *Store) AddApartment(ctx context.Context, apt Apartment) error {
	_, err := s.exec.Execute(ctx,
		"INSERT INTO Apartments (apartment_number, apartment_type, rent, check_in_date, check_out_date) VALUES (?, ?, ?, ?, ?)",
		apt.ApartmentNumber, apt.ApartmentType, apt.Rent,
		optionalDateParam(apt.CheckInDate), optionalDateParam(apt.CheckOutDate))
	if err != nil {
		return fmt.Errorf("failed to add apartment %d: %w", apt.ApartmentNumber, err)
	}
	return nil
}

func (s *Store) ListApartments(ctx context.Context) ([]Apartment, error) {
	apartments := []Apartment{}
	err := s.exec.Select(ctx, &apartments,
		"SELECT apartment_number, apartment_type, rent, occupancy, check_in_date, check_out_date FROM Apartments ORDER BY apartment_number")
	if err != nil {
		return nil, fmt.Errorf("failed to list apartments: %w", err)
	}
	return apartments, nil
}

// -- Leases --

// AddLease checks that the apartment and tenant exist, then inserts the
// lease. The checks and the insert are separate statements.
func (s *Store) AddLease(ctx context.Context, lease Lease) (*Lease, error) {
	exists, err := s.exists(ctx, "SELECT COUNT(*) AS n FROM Apartments WHERE apartment_number = ?", lease.ApartmentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up apartment %d: %w", lease.ApartmentNumber, err)
	}
	if !exists {
		return nil, &NotFoundError{Entity: "apartment", Key: lease.ApartmentNumber}
	}

	exists, err = s.exists(ctx, "SELECT COUNT(*) AS n FROM Tenants WHERE tenant_id = ?", lease.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tenant %d: %w", lease.TenantID, err)
	}
	if !exists {
		return nil, &NotFoundError{Entity: "tenant", Key: lease.TenantID}
	}

	var row insertedID
	err = s.exec.Select(ctx, &row,
		"INSERT INTO Leases (tenant_id, apartment_number, check_in_date, check_out_date) VALUES (?, ?, ?, ?) RETURNING lease_id AS id",
		lease.TenantID, lease.ApartmentNumber, dateParam(lease.CheckInDate), dateParam(lease.CheckOutDate))
	if err != nil {
		return nil, fmt.Errorf("failed to add lease for apartment %d: %w", lease.ApartmentNumber, err)
	}

	created := lease
	created.LeaseID = row.ID
	return &created, nil
}

// ListLeasedApartments returns leases whose check-in and check-out dates are
// both set.
func (s *Store) ListLeasedApartments(ctx context.Context) ([]Lease, error) {
	leases := []Lease{}
	err := s.exec.Select(ctx, &leases,
		"SELECT lease_id, apartment_number, tenant_id, check_in_date, check_out_date FROM Leases WHERE check_in_date IS NOT NULL AND check_out_date IS NOT NULL ORDER BY lease_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list leased apartments: %w", err)
	}
	return leases, nil
}

func (s *Store) ListLeases(ctx context.Context) ([]Lease, error) {
	leases := []Lease{}
	err := s.exec.Select(ctx, &leases,
		"SELECT lease_id, apartment_number, tenant_id, check_in_date, check_out_date FROM Leases ORDER BY lease_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	return leases, nil
}

func (s *Store) exists(ctx context.Context, query string, key int64) (bool, error) {
	var c count
	if err := s.exec.Select(ctx, &c, query, key); err != nil {
		return false, err
	}
	return c.N > 0, nil
}
