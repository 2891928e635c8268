package repo

import (
	"errors"

	"github.com/Skotchmaster/inventory_cart/internal/jsonstore"
	"github.com/Skotchmaster/inventory_cart/internal/models"
)

var ErrDuplicateCode = errors.New("product code already exists")

// errNoChange aborts a store update without rewriting the file.
var errNoChange = errors.New("no change")

// FileRepo bundles the three backing files of the service. Build it once
// per process: each store serializes access to its own file only.
type FileRepo struct {
	Products *ProductRepo
	Carts    *CartRepo
	Session  *SessionRepo
}

func NewFileRepo(productsPath, cartsPath, sessionPath string) *FileRepo {
	return &FileRepo{
		Products: &ProductRepo{Store: jsonstore.NewCollection[models.Product](productsPath)},
		Carts:    &CartRepo{Store: jsonstore.NewCollection[models.Cart](cartsPath)},
		Session:  &SessionRepo{Store: jsonstore.NewDocument[models.Session](sessionPath)},
	}
}
