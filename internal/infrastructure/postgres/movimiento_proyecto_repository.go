package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.MovimientoProyectoRepository = (*MovimientoProyectoRepo)(nil)

// MovimientoProyectoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoProyectoRepo struct {
	q Querier
}

// NewMovimientoProyectoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoProyectoRepository(q Querier) *MovimientoProyectoRepo {
	return &MovimientoProyectoRepo{q: q}
}

// Create persiste encabezado y líneas del movimiento de proyecto.
func (r *MovimientoProyectoRepo) Create(mov *entity.MovimientoProyecto) error {
	ctx := context.Background()
	createdBy := (*string)(nil)
	if mov.CreatedBy != "" {
		createdBy = &mov.CreatedBy
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO movimientos_proyecto (id, proyecto_id, tipo, modo_devolucion, notas, created_at, created_by)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		mov.ID, mov.ProyectoID, mov.Tipo, mov.ModoDevolucion, mov.Notas, mov.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento proyecto: %w", err)
	}
	for _, l := range mov.Lineas {
		_, err := r.q.Exec(ctx,
			`INSERT INTO movimiento_proyecto_lineas (id, movimiento_id, product_id, cantidad)
			 VALUES ($1, $2, $3, $4)`,
			l.ID, l.MovimientoID, l.ProductID, l.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert movimiento proyecto linea: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas. Nil si no existe.
func (r *MovimientoProyectoRepo) GetByID(id string) (*entity.MovimientoProyecto, error) {
	ctx := context.Background()
	var m entity.MovimientoProyecto
	var modo, createdBy *string
	err := r.q.QueryRow(ctx,
		`SELECT id, proyecto_id, tipo, modo_devolucion, notas, created_at, created_by
		 FROM movimientos_proyecto WHERE id = $1`, id,
	).Scan(&m.ID, &m.ProyectoID, &m.Tipo, &modo, &m.Notas, &m.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento proyecto: %w", err)
	}
	if modo != nil {
		m.ModoDevolucion = *modo
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, movimiento_id, product_id, cantidad
		 FROM movimiento_proyecto_lineas WHERE movimiento_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get movimiento proyecto lineas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovimientoProyectoLinea
		if err := rows.Scan(&l.ID, &l.MovimientoID, &l.ProductID, &l.Cantidad); err != nil {
			return nil, fmt.Errorf("scan movimiento proyecto linea: %w", err)
		}
		m.Lineas = append(m.Lineas, l)
	}
	return &m, rows.Err()
}

// ListByProyecto lista movimientos de un proyecto, más recientes primero.
func (r *MovimientoProyectoRepo) ListByProyecto(proyectoID string, limit, offset int) ([]*entity.MovimientoProyecto, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, proyecto_id, tipo, modo_devolucion, notas, created_at, created_by
		 FROM movimientos_proyecto WHERE proyecto_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, proyectoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos proyecto: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoProyecto
	for rows.Next() {
		var m entity.MovimientoProyecto
		var modo, createdBy *string
		if err := rows.Scan(&m.ID, &m.ProyectoID, &m.Tipo, &modo, &m.Notas, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movimiento proyecto: %w", err)
		}
		if modo != nil {
			m.ModoDevolucion = *modo
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
