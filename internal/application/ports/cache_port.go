package ports

import (
	"context"
	"time"
)

// DocumentCache caché de documentos ya renderizados (PDF). Un fallo de la caché no
// debe impedir la operación: los casos de uso la tratan como opcional.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
