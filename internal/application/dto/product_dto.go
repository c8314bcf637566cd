package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/productos.
// Stock y costo no se aceptan aquí: todo producto nace en 0/0 y solo
// los movimientos los cambian.
type CreateProductRequest struct {
	SKU      string  `json:"sku"`
	Barcode  *string `json:"barcode,omitempty"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Location string  `json:"location,omitempty"`
}

// UpdateProductRequest body para PUT /api/productos/:id (solo campos descriptivos).
type UpdateProductRequest struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Location string  `json:"location,omitempty"`
	Barcode  *string `json:"barcode,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Barcode     *string         `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand,omitempty"`
	Category    string          `json:"category,omitempty"`
	Location    string          `json:"location,omitempty"`
	Stock       int64           `json:"stock"`
	AverageCost decimal.Decimal `json:"average_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
