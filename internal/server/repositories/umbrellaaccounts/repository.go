package umbrellaaccounts

import (
	"context"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
)

type Repository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	MaxID(ctx context.Context) (int64, error)
	Create(ctx context.Context, account *models.UmbrellaAccount) error
	GetByEmail(ctx context.Context, email string) (*models.UmbrellaAccount, error)
}
