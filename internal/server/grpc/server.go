package grpc

import (
	"context"
	"net"
	"time"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/logging"
	pb "github.com/David-Parker/StormCoreAccountsAPI/internal/proto"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/server/models"
	"google.golang.org/grpc"
)

// AccountProvisioner is the part of the account service the transport needs.
type AccountProvisioner interface {
	CreateAccount(ctx context.Context, email, password string) (*models.ProvisionedAccount, error)
}

type GRPCServer struct {
	pb.UnimplementedAccountServiceServer
	address   string
	accounts  AccountProvisioner
	logger    logging.Logger
	jwtSecret []byte
	// maxTokenLifetime caps exp - iat of accepted operator tokens; zero disables it.
	maxTokenLifetime time.Duration
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountProvisioner, secretKey string, maxTokenLifetime time.Duration) (*GRPCServer, error) {
	return &GRPCServer{
		address:          a,
		logger:           l.With("module", "grpc_server"),
		accounts:         accounts,
		jwtSecret:        []byte(secretKey),
		maxTokenLifetime: maxTokenLifetime,
	}, nil
}

// NewServer builds a grpc.Server with the interceptor chain and the account
// service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor, s.accessTokenInterceptor))
	pb.RegisterAccountServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
