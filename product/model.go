// Package product implements the catalog: listing, creating, and deleting
// products. Who may call which operation is decided by the authorization
// layer, not here.
package product

import (
	"github.com/skillsenselab/secureapi/database"
)

// Product is a catalog entry.
type Product struct {
	database.BaseModel

	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
}

// TableName overrides the default table name.
func (Product) TableName() string { return "products" }
