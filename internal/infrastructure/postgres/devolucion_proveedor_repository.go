package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.DevolucionProveedorRepository = (*DevolucionProveedorRepo)(nil)

// DevolucionProveedorRepo implementación sobre PostgreSQL (usable con pool o tx).
type DevolucionProveedorRepo struct {
	q Querier
}

// NewDevolucionProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDevolucionProveedorRepository(q Querier) *DevolucionProveedorRepo {
	return &DevolucionProveedorRepo{q: q}
}

// Create persiste encabezado y líneas de la devolución.
func (r *DevolucionProveedorRepo) Create(dev *entity.DevolucionProveedor) error {
	ctx := context.Background()
	createdBy := (*string)(nil)
	if dev.CreatedBy != "" {
		createdBy = &dev.CreatedBy
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO devoluciones_proveedor (id, proveedor, motivo, created_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)`,
		dev.ID, dev.Proveedor, dev.Motivo, dev.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert devolucion proveedor: %w", err)
	}
	for _, l := range dev.Lineas {
		_, err := r.q.Exec(ctx,
			`INSERT INTO devolucion_proveedor_lineas (id, devolucion_id, product_id, cantidad)
			 VALUES ($1, $2, $3, $4)`,
			l.ID, l.DevolucionID, l.ProductID, l.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert devolucion proveedor linea: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una devolución con sus líneas. Nil si no existe.
func (r *DevolucionProveedorRepo) GetByID(id string) (*entity.DevolucionProveedor, error) {
	ctx := context.Background()
	var d entity.DevolucionProveedor
	var createdBy *string
	err := r.q.QueryRow(ctx,
		`SELECT id, proveedor, motivo, created_at, created_by FROM devoluciones_proveedor WHERE id = $1`, id,
	).Scan(&d.ID, &d.Proveedor, &d.Motivo, &d.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get devolucion proveedor: %w", err)
	}
	if createdBy != nil {
		d.CreatedBy = *createdBy
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, devolucion_id, product_id, cantidad
		 FROM devolucion_proveedor_lineas WHERE devolucion_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get devolucion lineas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DevolucionProveedorLinea
		if err := rows.Scan(&l.ID, &l.DevolucionID, &l.ProductID, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan devolucion linea: %w", err)
		}
		d.Lineas = append(d.Lineas, l)
	}
	return &d, rows.Err()
}

// List lista devoluciones (solo encabezados), más recientes primero.
func (r *DevolucionProveedorRepo) List(limit, offset int) ([]*entity.DevolucionProveedor, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, proveedor, motivo, created_at, created_by
		 FROM devoluciones_proveedor ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devoluciones proveedor: %w", err)
	}
	defer rows.Close()
	var list []*entity.DevolucionProveedor
	for rows.Next() {
		var d entity.DevolucionProveedor
		var createdBy *string
		if err := rows.Scan(&d.ID, &d.Proveedor, &d.Motivo, &d.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan devolucion proveedor: %w", err)
		}
		if createdBy != nil {
			d.CreatedBy = *createdBy
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
