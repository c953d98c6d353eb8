package grpc

import (
	"context"
	"errors"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) CreateAccount(ctx context.Context, req *pb.CreateAccountRequest) (*pb.CreateAccountResponse, error) {

	s.logger.Info(ctx, "Account creation request", "operator", OperatorFromContext(ctx))

	result, err := s.accounts.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &pb.CreateAccountResponse{
		ID:       result.Umbrella.ID,
		Email:    result.Umbrella.Email,
		Username: result.Legacy.Username,
		JoinDate: models.FormatJoinDate(result.Umbrella.JoinDate),
	}, nil
}

func (s *GRPCServer) ComputeHashes(ctx context.Context, req *pb.ComputeHashesRequest) (*pb.ComputeHashesResponse, error) {

	if req.Email == "" && req.Identifier == "" {
		return nil, status.Error(codes.InvalidArgument, "email or identifier is required")
	}

	resp := &pb.ComputeHashesResponse{}
	var err error

	if req.Email != "" {
		if resp.UmbrellaHash, err = services.ComputeUmbrellaHash(req.Email, req.Password); err != nil {
			return nil, toStatus(err)
		}
	}
	if req.Identifier != "" {
		if resp.LegacyHash, err = services.ComputeLegacyHash(req.Identifier, req.Password); err != nil {
			return nil, toStatus(err)
		}
	}

	return resp, nil
}

// toStatus maps provisioning error kinds onto gRPC codes. Only the reason
// reaches the caller; causes stay in the server logs.
func toStatus(err error) error {
	switch kind := common.KindOf(err); {
	case errors.Is(kind, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, common.ReasonOf(err))
	case errors.Is(kind, common.ErrPolicyViolation):
		return status.Error(codes.FailedPrecondition, common.ReasonOf(err))
	case errors.Is(kind, common.ErrConflict):
		return status.Error(codes.AlreadyExists, common.ReasonOf(err))
	case errors.Is(kind, common.ErrStorageFailure):
		return status.Error(codes.Unavailable, common.ReasonOf(err))
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, unauthorizedReason(err))
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func unauthorizedReason(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "missing token"
	case errors.Is(err, common.ErrTokenExpired):
		return "token expired"
	}
	return "invalid token"
}
