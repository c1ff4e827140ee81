package sessions

import "context"

// Repository guarda sesiones vivas. Get/Delete devuelven ErrNotFound si no existe.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
