package service

import (
	"context"

	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
)

// Service is what the command-line tool needs from the account server.
type Service interface {
	Close() error
	CreateAccount(ctx context.Context, email, password string) (*pb.CreateAccountResponse, error)
	ComputeHashes(ctx context.Context, email, identifier, password string) (*pb.ComputeHashesResponse, error)
}

var _ Service = (*AccountClientService)(nil)
