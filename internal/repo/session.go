package repo

import (
	"context"

	"github.com/Skotchmaster/inventory_cart/internal/jsonstore"
	"github.com/Skotchmaster/inventory_cart/internal/models"
)

type SessionRepo struct {
	Store *jsonstore.Document[models.Session]
}

func (r *SessionRepo) GetSession(ctx context.Context) (models.Session, error) {
	return r.Store.Load(ctx)
}

// UpdateSession holds the session file lock across fn, so a check on the
// stored tokens and the write of their replacement cannot interleave with
// another login or refresh.
func (r *SessionRepo) UpdateSession(ctx context.Context, fn func(cur models.Session) (models.Session, error)) error {
	return r.Store.Update(ctx, fn)
}
