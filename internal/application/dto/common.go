package dto

// PageResponse metadatos de página en listados. NextOffset falta en la última página,
// que se reconoce porque trae menos registros que Limit.
type PageResponse struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Count      int  `json:"count"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// NewPage arma los metadatos para una página de count registros.
func NewPage(limit, offset, count int) PageResponse {
	p := PageResponse{Limit: limit, Offset: offset, Count: count}
	if limit > 0 && count >= limit {
		next := offset + count
		p.NextOffset = &next
	}
	return p
}

// ErrorResponse cuerpo de error HTTP: Code estable para clientes, Message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
