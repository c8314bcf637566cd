package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only: este adaptador no expone UPDATE ni
// DELETE. Además de las columnas del movimiento lleva un bigserial seq, que da
// el orden de inserción; el kardex se lista y replaya por seq porque
// created_at puede empatar entre líneas de un mismo documento.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, kind, quantity, unit_cost, cost_before, cost_after, reference_kind, reference_id, created_at, created_by`

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity,
		movement.UnitCost, movement.CostBefore, movement.CostAfter,
		movement.ReferenceKind, movement.ReferenceID, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, más antiguos primero
// (orden de replay), con rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY seq LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByReference lista los movimientos generados por un documento.
func (r *StockMovementRepo) ListByReference(referenceKind, referenceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE reference_kind = $1 AND reference_id = $2
		ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, referenceKind, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list by reference: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// UltimoCostoSalida devuelve el unit_cost de la salida más reciente del
// producto hacia el proyecto dado (para devoluciones ponderadas). Nil si el
// producto nunca salió a ese proyecto con costo registrado.
func (r *StockMovementRepo) UltimoCostoSalida(productID, proyectoID string) (*decimal.Decimal, error) {
	query := `
		SELECT m.unit_cost
		FROM stock_movements m
		JOIN movimientos_proyecto mp ON mp.id = m.reference_id
		WHERE m.product_id = $1
		  AND m.reference_kind = $2
		  AND m.unit_cost IS NOT NULL
		  AND mp.proyecto_id = $3
		ORDER BY m.seq DESC
		LIMIT 1`
	var cost decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, entity.ReferenceKindProjectIssue, proyectoID).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ultimo costo salida: %w", err)
	}
	return &cost, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var createdBy *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost,
		&m.CostBefore, &m.CostAfter, &m.ReferenceKind, &m.ReferenceID, &m.CreatedAt, &createdBy)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
