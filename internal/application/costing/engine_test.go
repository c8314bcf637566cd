package costing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/tu-usuario/almacen-pro/internal/application/costing"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeProducts implementa repository.ProductRepository sobre un map.
// Devuelve copias para imitar el escaneo de filas del repo real.
type fakeProducts struct {
	byID map[string]*entity.Product
}

func newFakeProducts(ps ...*entity.Product) *fakeProducts {
	f := &fakeProducts{byID: make(map[string]*entity.Product)}
	for _, p := range ps {
		c := *p
		f.byID[p.ID] = &c
	}
	return f
}

func (f *fakeProducts) Create(p *entity.Product) error {
	for _, ex := range f.byID {
		if ex.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	f.byID[p.ID] = &c
	return nil
}

func (f *fakeProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProducts) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *fakeProducts) Update(p *entity.Product) error {
	ex, ok := f.byID[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	ex.SKU, ex.Barcode, ex.Name = p.SKU, p.Barcode, p.Name
	ex.Brand, ex.Category, ex.Location = p.Brand, p.Category, p.Location
	return nil
}

func (f *fakeProducts) UpdateLedger(productID string, stock int64, averageCost decimal.Decimal) error {
	p, ok := f.byID[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	p.AverageCost = averageCost
	return nil
}

func (f *fakeProducts) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (f *fakeProducts) Delete(id string) error { return nil }

// mustGet devuelve el producto o detiene el test.
func (f *fakeProducts) mustGet(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// fakeMovements implementa repository.StockMovementRepository append-only.
type fakeMovements struct {
	movs []*entity.StockMovement
}

func (f *fakeMovements) Create(m *entity.StockMovement) error {
	c := *m
	f.movs = append(f.movs, &c)
	return nil
}

func (f *fakeMovements) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.movs {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeMovements) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movs {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMovements) ListByReference(referenceKind, referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movs {
		if m.ReferenceKind == referenceKind && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) UltimoCostoSalida(productID, proyectoID string) (*decimal.Decimal, error) {
	return nil, nil
}

// producto listo para las pruebas, con stock y costo iniciales.
func producto(id, sku string, stock int64, costo string) *entity.Product {
	return &entity.Product{
		ID:          id,
		SKU:         sku,
		Name:        "Producto " + sku,
		Stock:       stock,
		AverageCost: dec(costo),
	}
}

var refCompra = entity.MovementReference{Kind: entity.ReferenceKindReceipt, ID: "doc-1"}

// ──────────────────────────────────────────────────────────────────────────────
// RecibirCompra
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: primera compra sobre stock cero → el PPP es el costo de la compra.
func TestRecibirCompra_PrimeraCompra(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 0, "0"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	res, err := engine.RecibirCompra(products, movements, "p1", 10, dec("100"), refCompra, testUserID)
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.StockAfter)
	assert.True(t, dec("100").Equal(res.CostAfter), "PPP debe ser 100, got %s", res.CostAfter)

	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(10), p.Stock)
	assert.True(t, dec("100").Equal(p.AverageCost))

	require.Len(t, movements.movs, 1)
	m := movements.movs[0]
	assert.Equal(t, entity.MovementKindIN, m.Kind)
	assert.Equal(t, int64(10), m.Quantity)
	require.NotNil(t, m.UnitCost)
	assert.True(t, dec("100").Equal(*m.UnitCost))
	assert.True(t, decimal.Zero.Equal(m.CostBefore))
	assert.True(t, dec("100").Equal(m.CostAfter))
	assert.Equal(t, entity.ReferenceKindReceipt, m.ReferenceKind)
	assert.Equal(t, "doc-1", m.ReferenceID)
	assert.Equal(t, testUserID, m.CreatedBy)
}

// Caso 2: segunda compra → promedio ponderado (10*100 + 5*130) / 15 = 110.
func TestRecibirCompra_RecalculaPPP(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 10, "100"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	res, err := engine.RecibirCompra(products, movements, "p1", 5, dec("130"), refCompra, testUserID)
	require.NoError(t, err)

	assert.Equal(t, int64(15), res.StockAfter)
	assert.True(t, dec("110").Equal(res.CostAfter), "PPP debe ser 110, got %s", res.CostAfter)

	m := movements.movs[0]
	assert.True(t, dec("100").Equal(m.CostBefore))
	assert.True(t, dec("110").Equal(m.CostAfter))
}

// El producto persiste a 2 decimales pero el kardex conserva 4 del valor
// intermedio: (2*10 + 1*10.10) / 3 = 10.0333...
func TestRecibirCompra_RedondeoKardex(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 2, "10"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	res, err := engine.RecibirCompra(products, movements, "p1", 1, dec("10.10"), refCompra, testUserID)
	require.NoError(t, err)

	assert.True(t, dec("10.03").Equal(res.CostAfter), "producto a 2 decimales, got %s", res.CostAfter)
	assert.True(t, dec("10.0333").Equal(movements.movs[0].CostAfter),
		"kardex a 4 decimales, got %s", movements.movs[0].CostAfter)
}

// Cantidad y costo inválidos, y producto inexistente, no dejan rastro.
func TestRecibirCompra_Validaciones(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 10, "100"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	_, err := engine.RecibirCompra(products, movements, "p1", 0, dec("100"), refCompra, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")

	_, err = engine.RecibirCompra(products, movements, "p1", 5, dec("-1"), refCompra, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo debe rechazarse")

	_, err = engine.RecibirCompra(products, movements, "no-existe", 5, dec("100"), refCompra, testUserID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Empty(t, movements.movs, "una operación rechazada no genera movimientos")
	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(10), p.Stock)
}

// Un costo con fracción de centavo se rechaza: el kardex guarda el costo
// unitario tal cual, y si el motor mezclara más decimales de los que guarda,
// el replay no podría reconstruir el mismo promedio.
func TestRecibirCompra_CostoSubCentavoRechazado(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 0, "0"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	_, err := engine.RecibirCompra(products, movements, "p1", 1, dec("10.00"), refCompra, testUserID)
	require.NoError(t, err)

	_, err = engine.RecibirCompra(products, movements, "p1", 1, dec("0.005"), refCompra, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tres decimales deben rechazarse")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "costo_unitario", ve.Campo)

	// El estado queda como lo dejó la compra válida, y el replay lo reproduce.
	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(1), p.Stock)
	assert.True(t, dec("10").Equal(p.AverageCost))
	require.Len(t, movements.movs, 1)

	stock, costo := usecase.ReplayMovimientos(movements.movs)
	assert.Equal(t, p.Stock, stock)
	assert.True(t, p.AverageCost.Equal(costo), "replay %s vs persistido %s", costo, p.AverageCost)
}

// Costo cero es válido (muestras gratis del proveedor) y sí mueve el promedio.
func TestRecibirCompra_CostoCero(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 5, "100"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	res, err := engine.RecibirCompra(products, movements, "p1", 5, decimal.Zero, refCompra, testUserID)
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(res.CostAfter), "(5*100 + 5*0) / 10 = 50, got %s", res.CostAfter)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumir
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: la salida descuenta stock y deja el PPP intacto.
func TestConsumir_NoTocaPPP(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 15, "110"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectIssue, ID: "mp-1"}

	res, err := engine.Consumir(products, movements, "p1", 3, ref, testUserID, appcosting.ConsumoOpts{RegistrarCosto: true})
	require.NoError(t, err)

	assert.Equal(t, int64(12), res.StockAfter)
	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(12), p.Stock)
	assert.True(t, dec("110").Equal(p.AverageCost), "el PPP no cambia en salidas")

	m := movements.movs[0]
	assert.Equal(t, entity.MovementKindOUT, m.Kind)
	require.NotNil(t, m.UnitCost)
	assert.True(t, dec("110").Equal(*m.UnitCost), "la salida registra el PPP vigente")
	assert.True(t, m.CostBefore.Equal(m.CostAfter), "cost_before == cost_after en salidas")
}

// Caso 4: salida mayor al disponible → InsufficientStockError y estado intacto.
func TestConsumir_StockInsuficiente(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 12, "110"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectIssue, ID: "mp-1"}

	_, err := engine.Consumir(products, movements, "p1", 50, ref, testUserID, appcosting.ConsumoOpts{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "p1", ise.ProductID)
	assert.Equal(t, "TUB-100", ise.SKU)
	assert.Equal(t, int64(12), ise.Disponible)
	assert.Equal(t, int64(50), ise.Solicitado)

	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(12), p.Stock, "el stock no cambia tras un rechazo")
	assert.Empty(t, movements.movs)
}

// PermitirNegativo deja pasar la salida aunque el stock quede bajo cero.
func TestConsumir_PermitirNegativo(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 5, "110"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectIssue, ID: "mp-1"}

	res, err := engine.Consumir(products, movements, "p1", 8, ref, testUserID, appcosting.ConsumoOpts{PermitirNegativo: true})
	require.NoError(t, err)
	assert.Equal(t, int64(-3), res.StockAfter)
}

// Sin RegistrarCosto el movimiento OUT guarda unit_cost nulo.
func TestConsumir_SinRegistrarCosto(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 10, "110"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectIssue, ID: "mp-1"}

	_, err := engine.Consumir(products, movements, "p1", 2, ref, testUserID, appcosting.ConsumoOpts{})
	require.NoError(t, err)
	assert.Nil(t, movements.movs[0].UnitCost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: la devolución simple reingresa al PPP vigente sin alterarlo.
func TestDevolucionSimple_NoTocaPPP(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 12, "110"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectReturn, ID: "mp-2"}

	res, err := engine.DevolucionSimple(products, movements, "p1", 3, ref, testUserID)
	require.NoError(t, err)

	assert.Equal(t, int64(15), res.StockAfter)
	p := products.mustGet(t, "p1")
	assert.True(t, dec("110").Equal(p.AverageCost), "devolución simple no cambia el PPP")

	m := movements.movs[0]
	assert.Equal(t, entity.MovementKindIN, m.Kind)
	require.NotNil(t, m.UnitCost)
	assert.True(t, dec("110").Equal(*m.UnitCost), "registra el PPP vigente como costo")
}

// La devolución ponderada mezcla el costo histórico igual que una compra:
// (16*162.50 + 2*100) / 18 = 155.555... → 155.56.
func TestDevolucionPonderada_MezclaComoCompra(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 16, "162.50"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	ref := entity.MovementReference{Kind: entity.ReferenceKindProjectReturn, ID: "mp-2"}

	res, err := engine.DevolucionPonderada(products, movements, "p1", 2, dec("100"), ref, testUserID)
	require.NoError(t, err)

	assert.Equal(t, int64(18), res.StockAfter)
	assert.True(t, dec("155.56").Equal(res.CostAfter), "esperado 155.56, got %s", res.CostAfter)
	assert.True(t, dec("155.5556").Equal(movements.movs[0].CostAfter))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes sobre secuencias de operaciones
// ──────────────────────────────────────────────────────────────────────────────

// Cada operación del motor genera exactamente un movimiento, y el replay de
// esos movimientos reconstruye (stock, PPP) bit a bit.
func TestMotor_ReplayReconstruyeElEstado(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 0, "0"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()
	refSalida := entity.MovementReference{Kind: entity.ReferenceKindProjectIssue, ID: "mp-1"}
	refDev := entity.MovementReference{Kind: entity.ReferenceKindProjectReturn, ID: "mp-2"}

	pasos := 0
	paso := func(res *appcosting.MovementResult, err error) {
		t.Helper()
		require.NoError(t, err)
		pasos++
		require.Len(t, movements.movs, pasos, "cada operación genera exactamente un movimiento")
	}

	paso(engine.RecibirCompra(products, movements, "p1", 10, dec("100"), refCompra, testUserID))
	paso(engine.RecibirCompra(products, movements, "p1", 5, dec("130"), refCompra, testUserID))
	paso(engine.Consumir(products, movements, "p1", 3, refSalida, testUserID, appcosting.ConsumoOpts{RegistrarCosto: true}))
	paso(engine.DevolucionSimple(products, movements, "p1", 2, refDev, testUserID))
	paso(engine.RecibirCompra(products, movements, "p1", 7, dec("99.99"), refCompra, testUserID))
	paso(engine.Consumir(products, movements, "p1", 4, refSalida, testUserID, appcosting.ConsumoOpts{}))

	p := products.mustGet(t, "p1")
	stock, costo := usecase.ReplayMovimientos(movements.movs)
	assert.Equal(t, p.Stock, stock, "el fold del kardex debe dar el stock persistido")
	assert.True(t, p.AverageCost.Equal(costo),
		"el fold del kardex debe dar el PPP persistido: %s vs %s", p.AverageCost, costo)
}

// El motor no es idempotente: repetir la misma compra duplica el efecto.
func TestMotor_NoEsIdempotente(t *testing.T) {
	products := newFakeProducts(producto("p1", "TUB-100", 0, "0"))
	movements := &fakeMovements{}
	engine := appcosting.NewEngine()

	for i := 0; i < 2; i++ {
		_, err := engine.RecibirCompra(products, movements, "p1", 10, dec("100"), refCompra, testUserID)
		require.NoError(t, err)
	}

	p := products.mustGet(t, "p1")
	assert.Equal(t, int64(20), p.Stock, "reprocesar duplica el stock, no hay deduplicación")
	assert.Len(t, movements.movs, 2)
}

// errors.Is sobre el error tipado sigue apuntando al centinela del dominio.
func TestInsufficientStockError_EsCentinela(t *testing.T) {
	err := &domain.InsufficientStockError{ProductID: "p1", SKU: "X", Disponible: 1, Solicitado: 2}
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}
