package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "cache.v1.CacheService"

// CacheServiceServer is the server API for the cache service.
// Messages are protobuf well-known types, so no generated code is needed.
type CacheServiceServer interface {
	Get(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Set(context.Context, *structpb.Struct) (*wrapperspb.BoolValue, error)
	Delete(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes CacheService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CacheServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Get", CacheServiceServer.Get),
		unary("Set", CacheServiceServer.Set),
		unary("Delete", CacheServiceServer.Delete),
		unary("Stats", CacheServiceServer.Stats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cache/v1/cache.proto",
}

// Register attaches srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv CacheServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

// unary builds the method descriptor for a single request/response RPC.
func unary[Req, Resp proto.Message](name string, call func(CacheServiceServer, context.Context, Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newMessage[Req]()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CacheServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CacheServiceServer), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// newMessage allocates an empty message of pointer type M.
func newMessage[M proto.Message]() M {
	var zero M
	return zero.ProtoReflect().Type().New().Interface().(M)
}

// Client is a typed client for CacheService.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Get returns the value for key and whether it was found.
func (c *Client) Get(ctx context.Context, key string, opts ...grpc.CallOption) (string, bool, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Get"), wrapperspb.String(key), out, opts...); err != nil {
		return "", false, err
	}
	fields := out.GetFields()
	return fields["value"].GetStringValue(), fields["found"].GetBoolValue(), nil
}

// Set stores value under key.
func (c *Client) Set(ctx context.Context, key, value string, opts ...grpc.CallOption) error {
	in, err := structpb.NewStruct(map[string]any{"key": key, "value": value})
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, fullMethod("Set"), in, new(wrapperspb.BoolValue), opts...)
}

// Delete removes key and reports whether it was cached.
func (c *Client) Delete(ctx context.Context, key string, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, fullMethod("Delete"), wrapperspb.String(key), out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

// Stats returns the raw stats struct.
func (c *Client) Stats(ctx context.Context, opts ...grpc.CallOption) (map[string]any, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("Stats"), new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
