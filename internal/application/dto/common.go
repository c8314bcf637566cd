package dto

// Límites de paginación compartidos por todos los listados.
const (
	pageLimitDefault = 20
	pageLimitMax     = 100
)

// PageRequest parámetros de paginación recibidos por query string.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// Normalizar acota la página: tamaño por defecto si no viene, tope duro en
// pageLimitMax y offset nunca negativo.
func (p *PageRequest) Normalizar() {
	if p.Limit <= 0 {
		p.Limit = pageLimitDefault
	}
	if p.Limit > pageLimitMax {
		p.Limit = pageLimitMax
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse eco de la página servida en las respuestas de listado.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo uniforme de los errores HTTP de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
