package domain

import "time"

// Medicine is an inventory item managed by pharmacists.
type Medicine struct {
	ID           string
	Name         string
	GenericName  string
	Manufacturer string
	Category     string
	Price        float64
	Stock        int
	Description  string
	SideEffects  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
