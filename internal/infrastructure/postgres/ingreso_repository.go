package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.IngresoRepository = (*IngresoRepo)(nil)

// IngresoRepo implementación sobre PostgreSQL (usable con pool o tx).
type IngresoRepo struct {
	q Querier
}

// NewIngresoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngresoRepository(q Querier) *IngresoRepo {
	return &IngresoRepo{q: q}
}

// Create persiste encabezado y líneas del ingreso.
func (r *IngresoRepo) Create(ingreso *entity.Ingreso) error {
	ctx := context.Background()
	query := `
		INSERT INTO ingresos (id, proveedor, num_factura, notas, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	createdBy := (*string)(nil)
	if ingreso.CreatedBy != "" {
		createdBy = &ingreso.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		ingreso.ID, ingreso.Proveedor, ingreso.NumFactura, ingreso.Notas, ingreso.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert ingreso: %w", err)
	}
	for _, l := range ingreso.Lineas {
		_, err := r.q.Exec(ctx,
			`INSERT INTO ingreso_lineas (id, ingreso_id, product_id, cantidad, costo_unitario)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.IngresoID, l.ProductID, l.Cantidad, l.CostoUnitario,
		)
		if err != nil {
			return fmt.Errorf("insert ingreso linea: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un ingreso con sus líneas. Nil si no existe.
func (r *IngresoRepo) GetByID(id string) (*entity.Ingreso, error) {
	ctx := context.Background()
	var ing entity.Ingreso
	var createdBy *string
	err := r.q.QueryRow(ctx,
		`SELECT id, proveedor, num_factura, notas, created_at, created_by FROM ingresos WHERE id = $1`, id,
	).Scan(&ing.ID, &ing.Proveedor, &ing.NumFactura, &ing.Notas, &ing.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingreso: %w", err)
	}
	if createdBy != nil {
		ing.CreatedBy = *createdBy
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, ingreso_id, product_id, cantidad, costo_unitario FROM ingreso_lineas WHERE ingreso_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get ingreso lineas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.IngresoLinea
		if err := rows.Scan(&l.ID, &l.IngresoID, &l.ProductID, &l.Cantidad, &l.CostoUnitario); err != nil {
			return nil, fmt.Errorf("scan ingreso linea: %w", err)
		}
		ing.Lineas = append(ing.Lineas, l)
	}
	return &ing, rows.Err()
}

// List lista ingresos (solo encabezados), más recientes primero.
func (r *IngresoRepo) List(limit, offset int) ([]*entity.Ingreso, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, proveedor, num_factura, notas, created_at, created_by
		 FROM ingresos ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingresos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingreso
	for rows.Next() {
		var ing entity.Ingreso
		var createdBy *string
		if err := rows.Scan(&ing.ID, &ing.Proveedor, &ing.NumFactura, &ing.Notas, &ing.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan ingreso: %w", err)
		}
		if createdBy != nil {
			ing.CreatedBy = *createdBy
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}
