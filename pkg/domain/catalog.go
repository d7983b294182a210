package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyID uniquely identifies a company.
type CompanyID uuid.UUID

// ProductID uniquely identifies a product.
type ProductID uuid.UUID

// Company represents a supplier or customer organization.
type Company struct {
	ID        CompanyID
	Name      string
	TaxID     string
	Address   string
	CreatedAt time.Time
}

// Product represents a catalog item, optionally owned by a company.
type Product struct {
	ID        ProductID
	CompanyID *CompanyID
	SKU       string
	Name      string
	UnitPrice float64
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
