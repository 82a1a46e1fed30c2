package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"apartment-manager/internal/database"
	"apartment-manager/internal/leasing"
)

// Handlers translates requests into leasing store calls.
type Handlers struct {
	store  *leasing.Store
	views  *Views
	logger *zap.Logger
	debug  bool
}

func NewHandlers(store *leasing.Store, views *Views, logger *zap.Logger, debug bool) *Handlers {
	return &Handlers{
		store:  store,
		views:  views,
		logger: logger,
		debug:  debug,
	}
}

// Index handles GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", page{Title: "Apartment Management"})
}

// AddTenantForm handles GET /add_tenant
func (h *Handlers) AddTenantForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_tenant.html", page{Title: "Add tenant"})
}

// AddTenant handles POST /add_tenant
func (h *Handlers) AddTenant(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r, "name", "email", "phone")
	if !ok {
		return
	}

	_, err := h.store.AddTenant(r.Context(), form["name"], form["email"], form["phone"])
	if errors.Is(err, database.ErrDuplicate) {
		h.render(w, r, http.StatusConflict, "add_tenant.html", page{
			Title: "Add tenant",
			Error: "A tenant with that email or phone already exists.",
			Form:  form,
		})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowTenants handles GET /show_tenants
func (h *Handlers) ShowTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.store.ListTenants(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_tenants.html", page{Title: "Tenants", Tenants: tenants})
}

// RemoveTenant handles GET /remove_tenant/{tenant_id}
func (h *Handlers) RemoveTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenant_id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	removed, err := h.store.RemoveTenant(r.Context(), tenantID)
	if errors.Is(err, database.ErrForeignKey) {
		http.Error(w, fmt.Sprintf("Tenant %d still has leases", tenantID), http.StatusConflict)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !removed {
		h.logger.Debug("tenant already absent", zap.Int64("tenant_id", tenantID))
	}

	http.Redirect(w, r, "/show_tenants", http.StatusFound)
}

// AddApartmentForm handles GET /add_apartment
func (h *Handlers) AddApartmentForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_apartment.html", page{Title: "Add apartment"})
}

// AddApartment handles POST /add_apartment
func (h *Handlers) AddApartment(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r, "apartment_number", "apartment_type", "rent", "check_in_date", "check_out_date")
	if !ok {
		return
	}
	invalid := func(msg string) {
		h.render(w, r, http.StatusBadRequest, "add_apartment.html", page{Title: "Add apartment", Error: msg, Form: form})
	}

	number, err := strconv.ParseInt(form["apartment_number"], 10, 64)
	if err != nil {
		invalid("Apartment number must be a whole number.")
		return
	}
	rent, err := strconv.ParseFloat(form["rent"], 64)
	if err != nil {
		invalid("Rent must be a number.")
		return
	}
	checkIn, err := parseOptionalDate(form["check_in_date"])
	if err != nil {
		invalid("Check-in date must look like 2024-01-31.")
		return
	}
	checkOut, err := parseOptionalDate(form["check_out_date"])
	if err != nil {
		invalid("Check-out date must look like 2024-01-31.")
		return
	}

	err = h.store.AddApartment(r.Context(), leasing.Apartment{
		ApartmentNumber: number,
		ApartmentType:   form["apartment_type"],
		Rent:            rent,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
	})
	if errors.Is(err, database.ErrDuplicate) {
		h.render(w, r, http.StatusConflict, "add_apartment.html", page{
			Title: "Add apartment",
			Error: fmt.Sprintf("Apartment %d already exists.", number),
			Form:  form,
		})
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/show_apartments", http.StatusFound)
}

// ShowApartments handles GET /show_apartments
func (h *Handlers) ShowApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.store.ListApartments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_apartments.html", page{Title: "Apartments", Apartments: apartments})
}

// AddLeaseForm handles GET /add_lease_apartment
func (h *Handlers) AddLeaseForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_lease_apartment.html", page{Title: "Lease an apartment"})
}

// AddLease handles POST /add_lease_apartment
func (h *Handlers) AddLease(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r, "apartment_number", "tenant_id", "check_in_date", "check_out_date")
	if !ok {
		return
	}
	respond := func(status int, msg string) {
		h.render(w, r, status, "add_lease_apartment.html", page{Title: "Lease an apartment", Error: msg, Form: form})
	}

	number, err := strconv.ParseInt(form["apartment_number"], 10, 64)
	if err != nil {
		respond(http.StatusBadRequest, "Apartment number must be a whole number.")
		return
	}
	tenantID, err := strconv.ParseInt(form["tenant_id"], 10, 64)
	if err != nil {
		respond(http.StatusBadRequest, "Tenant ID must be a whole number.")
		return
	}
	checkIn, err := parseDate(form["check_in_date"])
	if err != nil {
		respond(http.StatusBadRequest, "Check-in date must look like 2024-01-31.")
		return
	}
	checkOut, err := parseDate(form["check_out_date"])
	if err != nil {
		respond(http.StatusBadRequest, "Check-out date must look like 2024-01-31.")
		return
	}

	_, err = h.store.AddLease(r.Context(), leasing.Lease{
		TenantID:        tenantID,
		ApartmentNumber: number,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
	})
	var notFound *leasing.NotFoundError
	if errors.As(err, &notFound) {
		respond(http.StatusNotFound, fmt.Sprintf("No %s with number %d.", notFound.Entity, notFound.Key))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowLeasedApartments handles GET /show_leased_apartments
func (h *Handlers) ShowLeasedApartments(w http.ResponseWriter, r *http.Request) {
	leases, err := h.store.ListLeasedApartments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_leased_apartments.html", page{Title: "Leased apartments", Leases: leases})
}

// ExportWorkbook handles GET /export.xlsx
func (h *Handlers) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	data, err := leasing.Export(r.Context(), h.store)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("apartments_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("failed to write workbook",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
	}
}

func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request, fields ...string) (map[string]string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return nil, false
	}
	form := make(map[string]string, len(fields))
	for _, f := range fields {
		form[f] = strings.TrimSpace(r.PostFormValue(f))
	}
	return form, true
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	if err := h.views.Render(w, status, name, data); err != nil {
		h.fail(w, r, fmt.Errorf("failed to render %s: %w", name, err))
	}
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed",
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	msg := http.StatusText(http.StatusInternalServerError)
	if h.debug {
		msg = err.Error()
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

// parseDate coerces a submitted date. An empty value stays the zero time
// and reaches the store as NULL.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(leasing.DateLayout, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(leasing.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
