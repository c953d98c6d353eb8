package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "stormcore.accounts.v1.AccountService"

const (
	AccountService_CreateAccount_FullMethodName = "/" + ServiceName + "/CreateAccount"
	AccountService_ComputeHashes_FullMethodName = "/" + ServiceName + "/ComputeHashes"
)

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	ComputeHashes(context.Context, *ComputeHashesRequest) (*ComputeHashesResponse, error)
}

// UnimplementedAccountServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}

func (UnimplementedAccountServiceServer) ComputeHashes(context.Context, *ComputeHashesRequest) (*ComputeHashesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ComputeHashes not implemented")
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

// AccountService_ServiceDesc is the grpc.ServiceDesc for AccountService.
var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAccount",
			Handler:    createAccountHandler,
		},
		{
			MethodName: "ComputeHashes",
			Handler:    computeHashesHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

func createAccountHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req interface{}) (interface{}, error) {
		r := &CreateAccountRequest{}
		if err := r.FromStruct(req.(*structpb.Struct)); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resp, err := srv.(AccountServiceServer).CreateAccount(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.ToStruct(), nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountService_CreateAccount_FullMethodName,
	}
	return interceptor(ctx, in, info, call)
}

func computeHashesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req interface{}) (interface{}, error) {
		r := &ComputeHashesRequest{}
		if err := r.FromStruct(req.(*structpb.Struct)); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resp, err := srv.(AccountServiceServer).ComputeHashes(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.ToStruct(), nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountService_ComputeHashes_FullMethodName,
	}
	return interceptor(ctx, in, info, call)
}

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error)
	ComputeHashes(ctx context.Context, in *ComputeHashesRequest, opts ...grpc.CallOption) (*ComputeHashesResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc}
}

func (c *accountServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountService_CreateAccount_FullMethodName, in.ToStruct(), out, opts...); err != nil {
		return nil, err
	}
	resp := &CreateAccountResponse{}
	if err := resp.FromStruct(out); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *accountServiceClient) ComputeHashes(ctx context.Context, in *ComputeHashesRequest, opts ...grpc.CallOption) (*ComputeHashesResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AccountService_ComputeHashes_FullMethodName, in.ToStruct(), out, opts...); err != nil {
		return nil, err
	}
	resp := &ComputeHashesResponse{}
	if err := resp.FromStruct(out); err != nil {
		return nil, err
	}
	return resp, nil
}
