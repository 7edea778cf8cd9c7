package grpc

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/pkg/core/config"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
)

func nopLogger() *logging.Logger {
	return logging.Wrap(bzlog.NewNop())
}

func startBufServer(t *testing.T, logger *logging.Logger) (*Server, *grpc.ClientConn) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := NewServer(DefaultServerConfig(), logger)
	go func() { _ = srv.Serve(lis) }()

	cfg := DefaultClientConfig("passthrough:///bufnet")
	cfg.Logger = nopLogger()
	conn, err := Dial(cfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	return srv, conn
}

func TestServer_HealthAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Wrap(bzlog.NewWithConfig(bzlog.Config{Level: bzlog.LevelInfo, Output: &buf}))

	_, conn := startBufServer(t, logger)
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, "req-42")

	var header metadata.MD
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{}, grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	assert.Equal(t, []string{"req-42"}, header.Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), "/grpc.health.v1.Health/Check")
}

func TestServer_SetServingStatus(t *testing.T) {
	srv, conn := startBufServer(t, nopLogger())
	srv.SetServingStatus("blaze.Script", false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: "blaze.Script"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.GRPCPort = 7000
	cfg.Server.MaxMessageSize = 1024

	sc := ServerConfigFrom(cfg)
	assert.Equal(t, "127.0.0.1", sc.Host)
	assert.Equal(t, 7000, sc.Port)
	assert.Equal(t, 1024, sc.MaxRecvMsgSize)
	assert.Equal(t, "127.0.0.1:7000", NewServer(sc, nopLogger()).Address())

	assert.Equal(t, DefaultServerConfig(), ServerConfigFrom(nil))
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(nopLogger())
	info := &grpc.UnaryServerInfo{FullMethod: "/blaze.Script/Parse"}

	_, err := interceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})

	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRequestIDInterceptor_Generates(t *testing.T) {
	interceptor := RequestIDInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/blaze.Script/Lex"}

	var seen string
	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, _ interface{}) (interface{}, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	})

	require.NoError(t, err)
	assert.Len(t, seen, 36)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"syntax", bzerror.New("x").WithCode(bzerror.CodeSyntax), codes.InvalidArgument},
		{"too long", bzerror.New("x").WithCode(bzerror.CodeInvalidInput), codes.InvalidArgument},
		{"not found", bzerror.New("x").WithCode(bzerror.CodeNotFound), codes.NotFound},
		{"database", bzerror.New("x").WithCode(bzerror.CodeDatabaseError), codes.Internal},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"plain", errors.New("x"), codes.Internal},
		{"status passthrough", status.Error(codes.Aborted, "x"), codes.Aborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(ToStatus(tt.err)))
		})
	}

	assert.NoError(t, ToStatus(nil))
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "def"))
	assert.Equal(t, "def", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}
