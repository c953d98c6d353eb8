package legacyaccounts

import (
	"context"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.LegacyAccount) error
	GetByUsername(ctx context.Context, username string) (*models.LegacyAccount, error)
}
