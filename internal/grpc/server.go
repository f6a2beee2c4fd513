package grpc

import (
	"context"
	"errors"

	"cache-manager/internal/core/ports"
	"cache-manager/internal/core/service"
	"cache-manager/internal/store"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Adapter implements CacheServiceServer on top of the cache service.
type Adapter struct {
	service ports.CacheService
}

var _ CacheServiceServer = (*Adapter)(nil)

// New creates a new gRPC adapter.
func New(service ports.CacheService) *Adapter {
	return &Adapter{service: service}
}

// Get retrieves a value from the cache.
// A miss is reported as found=false, not as an error.
func (s *Adapter) Get(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	val, err := s.service.Get(ctx, req.GetValue())
	switch {
	case errors.Is(err, service.ErrNotFound):
		return structpb.NewStruct(map[string]any{"found": false, "value": ""})
	case err != nil:
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{"found": true, "value": val})
}

// Set stores a value in the cache. The request carries "key" and "value" fields.
func (s *Adapter) Set(ctx context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error) {
	fields := req.GetFields()
	key := fields["key"].GetStringValue()
	value := fields["value"].GetStringValue()
	if err := s.service.Set(ctx, key, value); err != nil {
		return wrapperspb.Bool(false), toStatus(err)
	}
	return wrapperspb.Bool(true), nil
}

// Delete removes a value from the cache.
func (s *Adapter) Delete(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	err := s.service.Delete(ctx, req.GetValue())
	switch {
	case errors.Is(err, service.ErrNotFound):
		return wrapperspb.Bool(false), nil
	case err != nil:
		return wrapperspb.Bool(false), toStatus(err)
	}
	return wrapperspb.Bool(true), nil
}

// Stats reports size, capacity and the cache counters.
func (s *Adapter) Stats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st, err := s.service.Stats(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{
		"policy":    st.Policy,
		"len":       st.Len,
		"capacity":  st.Capacity,
		"hits":      st.Hits,
		"misses":    st.Misses,
		"inserts":   st.Inserts,
		"evictions": st.Evictions,
	})
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyKey):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, store.ErrCapacityInconsistency):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
