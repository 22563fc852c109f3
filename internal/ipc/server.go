package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"mutablerig/internal/logging"
	"mutablerig/internal/session"
)

// Server exposes session control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	session   *session.Session
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. The shutdown
// callback is invoked when a client requests session shutdown.
func NewServer(ctx context.Context, path string, sess *session.Session, logger *slog.Logger, shutdown func()) (*Server, error) {
	if sess == nil {
		return nil, errors.New("ipc server requires session")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{session: sess, logger: logger, ctx: ctx, shutdown: shutdown}
	if err := rpcServer.RegisterName("Session", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		session:   sess,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := s.Remove(); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"))
	}
}

// Remove deletes the socket file.
func (s *Server) Remove() error {
	return os.RemoveAll(s.path)
}

type service struct {
	session  *session.Session
	logger   *slog.Logger
	ctx      context.Context
	shutdown func()
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return logging.WithComponent(s.logger, "ipc")
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.session.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.SceneName = status.SceneName
	resp.ScenePath = status.ScenePath
	resp.StartFrame = status.StartFrame
	resp.EndFrame = status.EndFrame
	resp.CurrentFrame = status.CurrentFrame
	resp.Playing = status.Playing
	resp.ActiveRig = status.ActiveRig
	resp.ActiveRigTitle = status.ActiveRigTitle
	resp.PendingRig = status.PendingRig
	resp.PendingFrame = status.PendingFrame
	resp.Deferrals = status.Deferrals
	resp.TransferCount = status.TransferCount
	resp.JournalPath = status.JournalPath
	resp.LockPath = status.LockPath
	resp.LastError = status.LastError
	return nil
}

func (s *service) Scrub(req ScrubRequest, resp *ScrubResponse) error {
	s.log().Debug("scrub requested", logging.Frame(req.Frame))
	frame, err := s.session.Scrub(s.ctx, req.Frame)
	resp.Frame = frame
	resp.ActiveRig = s.session.ActiveRig()
	status := s.session.Status(s.ctx)
	resp.Pending = status.PendingRig
	return err
}

func (s *service) Play(req PlayRequest, resp *PlayResponse) error {
	s.log().Debug("playback requested",
		logging.Float64("from", req.From),
		logging.Float64("to", req.To))
	if err := s.session.Play(req.From, req.To); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	resp.Started = true
	resp.Message = "playback started"
	return nil
}

func (s *service) StopPlayback(_ StopPlaybackRequest, resp *StopPlaybackResponse) error {
	resp.Stopped = s.session.StopPlayback()
	return nil
}

func (s *service) Shutdown(_ ShutdownRequest, resp *ShutdownResponse) error {
	s.log().Info("shutdown requested via IPC",
		logging.String(logging.FieldEventType, "session_shutdown"))
	resp.Stopping = true
	if s.shutdown != nil {
		// Let the RPC response flush before the process winds down.
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdown()
		}()
	}
	return nil
}

func (s *service) TransferList(req TransferListRequest, resp *TransferListResponse) error {
	entries, err := s.session.Transfers(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Entries = make([]TransferEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		resp.Entries = append(resp.Entries, TransferEntry{
			ID:         entry.ID,
			TransferID: entry.TransferID,
			Frame:      entry.Frame,
			FromRig:    entry.FromRig,
			ToRig:      entry.ToRig,
			PoseJSON:   entry.PoseJSON,
			CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return nil
}

func (s *service) TransferClear(_ TransferClearRequest, resp *TransferClearResponse) error {
	removed, err := s.session.ClearTransfers(s.ctx)
	if err != nil {
		return err
	}
	resp.Removed = removed
	s.log().Info("transfer journal cleared",
		logging.String(logging.FieldEventType, "journal_clear"),
		logging.Int64("removed_count", removed))
	return nil
}

func (s *service) JournalHealth(_ JournalHealthRequest, resp *JournalHealthResponse) error {
	health, err := s.session.JournalHealth(s.ctx)
	resp.DBPath = health.DBPath
	resp.DatabaseExists = health.DatabaseExists
	resp.DatabaseReadable = health.DatabaseReadable
	resp.TableExists = health.TableExists
	resp.TotalTransfers = health.TotalTransfers
	resp.IntegrityCheck = health.IntegrityCheck
	resp.Error = health.Error
	return err
}
