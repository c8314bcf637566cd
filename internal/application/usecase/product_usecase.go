package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo. Solo toca campos descriptivos: Stock y
// AverageCost son del motor de costeo y aquí únicamente se leen.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto con stock 0 y costo 0.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" {
		return nil, &domain.ValidationError{Campo: "sku", Motivo: "es requerido"}
	}
	if in.Name == "" {
		return nil, &domain.ValidationError{Campo: "name", Motivo: "es requerido"}
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Barcode:   in.Barcode,
		Name:      in.Name,
		Brand:     in.Brand,
		Category:  in.Category,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto. Nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetBySKU obtiene un producto por su SKU. Nil si no existe.
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetBySKU(sku)
	if err != nil || p == nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update modifica los campos descriptivos. Stock y costo no se aceptan.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil || p == nil {
		return nil, err
	}
	p.Name = in.Name
	p.Brand = in.Brand
	p.Category = in.Category
	p.Location = in.Location
	if in.Barcode != nil {
		p.Barcode = in.Barcode
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto sin movimientos. Si tiene kardex, la operación
// falla con ErrProductHasMovements: la historia nunca se pierde.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalizar()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Location:    p.Location,
		Stock:       p.Stock,
		AverageCost: p.AverageCost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
