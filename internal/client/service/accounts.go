// Package service is the gRPC client side of the account service.
package service

import (
	"context"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type AccountClientService struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AccountServiceClient
	accessToken string
}

// accessTokenInterceptor attaches the operator token to every outgoing call.
func (s *AccountClientService) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, s.accessToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewAccountClientService(endpointURL, accessToken string) (*AccountClientService, error) {
	return &AccountClientService{endpointURL: endpointURL, accessToken: accessToken}, nil
}

// InitGRPCClient connects lazily; extra options (e.g. a custom dialer) are
// appended to the defaults.
func (s *AccountClientService) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAccountServiceClient(conn)
	return nil
}

func (s *AccountClientService) CreateAccount(ctx context.Context, email, password string) (*pb.CreateAccountResponse, error) {
	return s.client.CreateAccount(ctx, &pb.CreateAccountRequest{Email: email, Password: password})
}

func (s *AccountClientService) ComputeHashes(ctx context.Context, email, identifier, password string) (*pb.ComputeHashesResponse, error) {
	return s.client.ComputeHashes(ctx, &pb.ComputeHashesRequest{Email: email, Identifier: identifier, Password: password})
}

func (s *AccountClientService) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
