package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/logging"
	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/auth"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const OperatorKey ctxKey = "operator"

// protectedMethods require an operator token.
var protectedMethods = map[string]bool{
	pb.AccountService_CreateAccount_FullMethodName: true,
}

// OperatorFromContext returns the operator authenticated for this call, or "".
func OperatorFromContext(ctx context.Context) string {
	op, _ := ctx.Value(OperatorKey).(string)
	return op
}

var errMissingToken = fmt.Errorf("%w: missing token", common.ErrorUnauthorized)

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {
		operator, err := s.authorize(ctx)
		if err != nil {
			return nil, toStatus(err)
		}
		ctx = context.WithValue(ctx, OperatorKey, operator)
	}

	return handler(ctx, req)
}

// authorize checks the operator token sent with the call. Every failure
// matches common.ErrorUnauthorized.
func (s *GRPCServer) authorize(ctx context.Context) (string, error) {
	accessToken := firstValue(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return "", errMissingToken
	}

	operator, err := auth.GetOperatorFromToken(accessToken, s.jwtSecret, s.maxTokenLifetime)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return operator, nil
}

// requestLogInterceptor tags the call with a request id (taken from the
// x-request-id header or generated) and logs its outcome. Requests and
// responses are never logged: they carry passwords.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID := firstValue(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = logging.WithRequestID(ctx, requestID)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "request served", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "request failed", args...)
	default:
		s.logger.Warn(ctx, "request rejected", append(args, "reason", status.Convert(err).Message())...)
	}

	return resp, err
}

func firstValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
