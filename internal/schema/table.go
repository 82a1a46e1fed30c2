// Package schema creates the leasing tables. There is no versioning: tables
// are created when missing and never altered.
package schema

import (
	"fmt"
	"strings"

	"apartment-manager/internal/config"
)

// Table is one leasing table and its column definitions.
type Table struct {
	Name    string
	columns func(dialect string) []string
}

var (
	Apartments = Table{
		Name: "Apartments",
		columns: func(dialect string) []string {
			return []string{
				"apartment_number INTEGER PRIMARY KEY",
				"apartment_type TEXT NOT NULL",
				"rent REAL NOT NULL",
				"occupancy INTEGER DEFAULT 0",
				"check_in_date DATE",
				"check_out_date DATE",
			}
		},
	}

	Tenants = Table{
		Name: "Tenants",
		columns: func(dialect string) []string {
			return []string{
				identity(dialect, "tenant_id"),
				"name TEXT NOT NULL",
				"email TEXT NOT NULL UNIQUE",
				"phone TEXT NOT NULL UNIQUE",
			}
		},
	}

	Leases = Table{
		Name: "Leases",
		columns: func(dialect string) []string {
			return []string{
				identity(dialect, "lease_id"),
				"tenant_id INTEGER NOT NULL",
				"apartment_number INTEGER NOT NULL",
				"check_in_date DATE NOT NULL",
				"check_out_date DATE NOT NULL",
				"FOREIGN KEY (tenant_id) REFERENCES Tenants(tenant_id)",
				"FOREIGN KEY (apartment_number) REFERENCES Apartments(apartment_number)",
			}
		},
	}
)

// Tables lists the tables in creation order; Leases references the other two.
func Tables() []Table {
	return []Table{Apartments, Tenants, Leases}
}

func (t Table) CreateStatement(dialect string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		t.Name, strings.Join(t.columns(dialect), ",\n\t"))
}

func identity(dialect, column string) string {
	if dialect == config.DriverPostgres {
		return column + " INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	}
	return column + " INTEGER PRIMARY KEY"
}
