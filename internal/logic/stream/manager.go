package stream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Ozodimgba/geyser/internal/config"
	"github.com/Ozodimgba/geyser/internal/consts"
	"github.com/Ozodimgba/geyser/pkg/logger"
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
)

// UpdateHandler consumes one inbound streamed update. Handlers run on the
// receive goroutine, one update at a time, in arrival order.
type UpdateHandler func(update *pb.SubscribeUpdate)

// Manager owns the single long-lived Geyser subscription: it dials the
// endpoint, writes the subscribe request once, and pumps every inbound
// update into the handler. There is no reconnect path; a broken stream
// surfaces on Done and the process decides what to do (it exits).
type Manager struct {
	conf    config.GrpcConfig
	conn    *grpc.ClientConn
	client  pb.GeyserClient
	stream  pb.Geyser_SubscribeClient
	handler UpdateHandler

	ctx    context.Context
	cancel context.CancelFunc
	done   chan error
}

// NewManager dials the Geyser endpoint. Connection tuning comes from the
// yaml config; credentials ride as x-token metadata on the stream.
func NewManager(conf config.GrpcConfig, handler UpdateHandler) (*Manager, error) {
	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.ConnectTimeoutSec)*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx,
		conf.Endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})),
		grpc.WithInitialWindowSize(int32(conf.InitialWindowSize)),
		grpc.WithInitialConnWindowSize(int32(conf.InitialConnWindowSize)),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallSendMsgSize(conf.MaxCallSendMsgSize),
			grpc.MaxCallRecvMsgSize(conf.MaxCallRecvMsgSize),
		),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                time.Duration(conf.KeepalivePingIntervalSec) * time.Second,
			Timeout:             time.Duration(conf.KeepalivePingTimeoutSec) * time.Second,
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", conf.Endpoint, err)
	}

	ctx, cancelStream := context.WithCancel(context.Background())
	return &Manager{
		conf:    conf,
		conn:    conn,
		client:  pb.NewGeyserClient(conn),
		handler: handler,
		ctx:     ctx,
		cancel:  cancelStream,
		done:    make(chan error, 1),
	}, nil
}

// buildSubscribeRequest declares the single transaction filter: confirmed
// commitment, and transactions that include both the pump.fun program and
// its mint authority. All other filter categories stay empty.
func buildSubscribeRequest() *pb.SubscribeRequest {
	vote := false
	failed := false
	commitment := pb.CommitmentLevel_CONFIRMED
	return &pb.SubscribeRequest{
		Accounts: map[string]*pb.SubscribeRequestFilterAccounts{},
		Slots:    map[string]*pb.SubscribeRequestFilterSlots{},
		Blocks:   map[string]*pb.SubscribeRequestFilterBlocks{},
		Entry:    map[string]*pb.SubscribeRequestFilterEntry{},
		Transactions: map[string]*pb.SubscribeRequestFilterTransactions{
			consts.TransactionFilterLabel: {
				Vote:   &vote,
				Failed: &failed,
				AccountRequired: []string{
					consts.PumpFunProgramStr,
					consts.PumpFunMintAuthorityStr,
				},
			},
		},
		Commitment: &commitment,
	}
}

// Start opens the duplex stream and writes the subscribe request exactly
// once. Any failure here is a startup failure for the process.
func (m *Manager) Start() error {
	metaCtx := metadata.NewOutgoingContext(
		m.ctx,
		metadata.New(map[string]string{"x-token": m.conf.XToken}),
	)
	stream, err := m.client.Subscribe(metaCtx)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	req := buildSubscribeRequest()
	if err := sendWithTimeout(m.ctx, stream.Send, req, time.Duration(m.conf.SendTimeoutSec)*time.Second); err != nil {
		return fmt.Errorf("failed to send subscribe request: %w", err)
	}
	m.stream = stream

	logger.Infof("subscribed to %q (commitment=confirmed, accountRequired=%v)",
		consts.TransactionFilterLabel, req.Transactions[consts.TransactionFilterLabel].AccountRequired)

	if m.conf.StreamPingIntervalSec > 0 {
		go m.pingLoop(m.ctx)
	}
	go m.recvLoop(m.ctx)
	return nil
}

// Done yields the stream's terminal state: nil after a graceful server
// close, the transport error otherwise.
func (m *Manager) Done() <-chan error {
	return m.done
}

// Stop terminates the stream and closes the connection.
func (m *Manager) Stop() {
	m.cancel()
	if err := m.conn.Close(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warnf("failed to close connection: %v", err)
	}
}

// recvLoop blocks on the stream and feeds every update to the handler.
// One update at a time; the pipeline per update is synchronous.
func (m *Manager) recvLoop(ctx context.Context) {
	for {
		update, err := m.stream.Recv()
		if err != nil {
			select {
			case <-ctx.Done():
				m.done <- nil // locally stopped, not a stream failure
			default:
				if errors.Is(err, io.EOF) {
					logger.Infof("stream closed by server")
					m.done <- nil
				} else {
					logger.Errorf("stream error: %v", err)
					m.done <- err
				}
			}
			return
		}
		m.handler(update)
	}
}

// pingLoop keeps the duplex stream warm through long idle stretches. Ping
// failures are logged only; the stream itself decides when it is dead.
func (m *Manager) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(m.conf.StreamPingIntervalSec) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ping := &pb.SubscribeRequest{Ping: &pb.SubscribeRequestPing{Id: 1}}
			if err := sendWithTimeout(ctx, m.stream.Send, ping, time.Duration(m.conf.SendTimeoutSec)*time.Second); err != nil {
				logger.Warnf("stream ping failed: %v", err)
			}
		}
	}
}

// sendWithTimeout bounds a stream write, which otherwise has no deadline.
func sendWithTimeout[T any](ctx context.Context, sendFunc func(T) error, req T, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- sendFunc(req)
	}()

	select {
	case <-timeoutCtx.Done():
		return timeoutCtx.Err()
	case err := <-done:
		return err
	}
}
