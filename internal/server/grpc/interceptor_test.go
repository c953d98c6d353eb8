package grpc

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/logging"
	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:           nopLogger{},
		jwtSecret:        []byte(secret),
		accounts:         &fakeAccounts{},
		maxTokenLifetime: time.Hour,
	}
}

var createInfo = &grpc.UnaryServerInfo{FullMethod: pb.AccountService_CreateAccount_FullMethodName}

func TestInterceptor_UnprotectedMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	info := &grpc.UnaryServerInfo{FullMethod: pb.AccountService_ComputeHashes_FullMethodName}
	handlerCalled := false

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		handlerCalled = true
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !handlerCalled {
		t.Fatal("handler was not called")
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
}

func TestInterceptor_CreateAccount_MissingToken(t *testing.T) {
	s := newTestServer("secret")

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, createInfo, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_CreateAccount_InvalidToken(t *testing.T) {
	s := newTestServer("secret")

	md := metadata.New(map[string]string{
		common.AccessTokenHeaderName: "not-a-valid-jwt",
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(ctx, nil, createInfo, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_CreateAccount_ExpiredToken(t *testing.T) {
	secret := "secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken("ops", []byte(secret), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))

	_, err = s.accessTokenInterceptor(ctx, nil, createInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for expired token")
		return nil, nil
	})
	if status.Convert(err).Message() != "token expired" {
		t.Fatalf("expected 'token expired', got %v", err)
	}
}

func TestInterceptor_CreateAccount_ValidToken_SetsOperator(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken("ops-bot", []byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	md := metadata.New(map[string]string{
		common.AccessTokenHeaderName: token,
	})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = OperatorFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(ctx, nil, createInfo, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != "ops-bot" {
		t.Fatalf("operator not propagated in context: got %q", got)
	}
}

func TestInterceptor_CreateAccount_TokenOutlivesMaxLifetime(t *testing.T) {
	secret := "secret"
	s := newTestServer(secret)

	token, err := auth.GenerateToken("ops", []byte(secret), 48*time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))

	_, err = s.accessTokenInterceptor(ctx, nil, createInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called for a token minted past the cap")
		return nil, nil
	})
	if status.Code(err) != codes.Unauthenticated || status.Convert(err).Message() != "invalid token" {
		t.Fatalf("expected Unauthenticated 'invalid token', got %v", err)
	}
}

func TestAuthorize_FailuresAreUnauthorized(t *testing.T) {
	s := newTestServer("secret")

	_, err := s.authorize(context.Background())
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("missing token: expected common.ErrorUnauthorized, got %v", err)
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, "garbage"))
	_, err = s.authorize(ctx)
	if !errors.Is(err, common.ErrorUnauthorized) || !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("bad token: expected common.ErrorUnauthorized wrapping common.ErrInvalidToken, got %v", err)
	}
}

func TestRequestLogInterceptor_PropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer("secret")
	s.logger = logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.RequestIDHeaderName, "req-7"))

	var seen string
	_, err := s.requestLogInterceptor(ctx, nil, createInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = logging.RequestID(ctx)
		return nil, status.Error(codes.AlreadyExists, "account exists")
	})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("handler error must pass through, got %v", err)
	}
	if seen != "req-7" {
		t.Fatalf("request id not in context: %q", seen)
	}

	out := buf.String()
	for _, want := range []string{"request_id=req-7", "code=AlreadyExists", `reason="account exists"`, "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestRequestLogInterceptor_GeneratesRequestID(t *testing.T) {
	s := newTestServer("secret")

	var seen string
	_, err := s.requestLogInterceptor(context.Background(), nil, createInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = logging.RequestID(ctx)
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 36 {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
}
