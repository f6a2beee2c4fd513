package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"cache-manager/internal/core/ports"
	"cache-manager/internal/core/service"
	"cache-manager/internal/store"
	"cache-manager/internal/store/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type mockService struct {
	getFunc    func(ctx context.Context, key string) (string, error)
	setFunc    func(ctx context.Context, key, value string) error
	deleteFunc func(ctx context.Context, key string) error
	statsFunc  func(ctx context.Context) (ports.Stats, error)
}

func (m *mockService) Get(ctx context.Context, key string) (string, error) {
	return m.getFunc(ctx, key)
}
func (m *mockService) Set(ctx context.Context, key, value string) error {
	return m.setFunc(ctx, key, value)
}
func (m *mockService) Delete(ctx context.Context, key string) error {
	return m.deleteFunc(ctx, key)
}
func (m *mockService) Stats(ctx context.Context) (ports.Stats, error) {
	return m.statsFunc(ctx)
}

func TestAdapter_Get(t *testing.T) {
	mock := &mockService{
		getFunc: func(ctx context.Context, key string) (string, error) {
			if key == "found" {
				return "value", nil
			}
			return "", service.ErrNotFound
		},
	}
	adapter := New(mock)

	// Test Found
	resp, err := adapter.Get(context.Background(), wrapperspb.String("found"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Fields["found"].GetBoolValue() || resp.Fields["value"].GetStringValue() != "value" {
		t.Errorf("expected found=true value='value', got %v", resp.AsMap())
	}

	// Test Not Found
	resp, err = adapter.Get(context.Background(), wrapperspb.String("missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Fields["found"].GetBoolValue() {
		t.Errorf("expected found=false")
	}
}

func TestAdapter_ErrorCodes(t *testing.T) {
	mock := &mockService{
		setFunc: func(ctx context.Context, key, value string) error {
			if key == "" {
				return service.ErrEmptyKey
			}
			return store.ErrCapacityInconsistency
		},
		getFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("boom")
		},
	}
	adapter := New(mock)

	req, err := structpb.NewStruct(map[string]any{"key": "", "value": "v"})
	require.NoError(t, err)
	_, err = adapter.Set(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req, err = structpb.NewStruct(map[string]any{"key": "k", "value": "v"})
	require.NoError(t, err)
	_, err = adapter.Set(context.Background(), req)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = adapter.Get(context.Background(), wrapperspb.String("k"))
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestAdapter_Stats(t *testing.T) {
	mock := &mockService{
		statsFunc: func(ctx context.Context) (ports.Stats, error) {
			return ports.Stats{Policy: "fifo", Len: 1, Capacity: 4, Hits: 2, Inserts: 5}, nil
		},
	}
	resp, err := New(mock).Stats(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	got := resp.AsMap()
	assert.Equal(t, "fifo", got["policy"])
	assert.Equal(t, 1.0, got["len"])
	assert.Equal(t, 4.0, got["capacity"])
	assert.Equal(t, 2.0, got["hits"])
	assert.Equal(t, 5.0, got["inserts"])
}

// End-to-end over an in-memory listener with a real cache behind the service.
func TestClient_RoundTrip(t *testing.T) {
	cache := store.NewLocked(store.MustNew[string, string](2, policy.NewLRU[string]()))
	svc := service.New(cache, service.WithPolicyName("lru"))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, New(svc))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := NewClient(conn)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", "1"))
	require.NoError(t, client.Set(ctx, "b", "2"))

	val, found, err := client.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", val)

	// b is least recently used and goes first.
	require.NoError(t, client.Set(ctx, "c", "3"))
	_, found, err = client.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := client.Delete(ctx, "c")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = client.Delete(ctx, "c")
	require.NoError(t, err)
	assert.False(t, deleted)

	err = client.Set(ctx, "", "x")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	st, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "lru", st["policy"])
	assert.Equal(t, 1.0, st["len"])
	assert.Equal(t, 3.0, st["inserts"])
	assert.Equal(t, 1.0, st["evictions"])
}
