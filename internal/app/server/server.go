//go:generate mockgen -source=server.go -destination=server_mock.go -package=server
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"lens/internal/app/bus"
	"lens/internal/app/cache"
	"lens/internal/app/errors"
	"lens/internal/app/query"
	"lens/internal/app/stats"
	"lens/internal/config"
	"lens/internal/config/logger"
)

// Server answers JSON-line requests over the Unix socket: one request
// object in, one response object out per connection. A subscribe_events
// request instead switches the connection to a stream of event frames.
type Server interface {
	Start(ctx context.Context) error
	Stop() error
	SocketPath() string
}

// server implements the Server interface
type server struct {
	cfg        *config.Config
	socketPath string
	listener   net.Listener
	cache      cache.Cache
	engine     query.Engine
	stats      stats.Collector
	bus        bus.Bus
	hub        Hub
	running    atomic.Bool
	wg         sync.WaitGroup
	connID     atomic.Int64
	cancel     context.CancelFunc
	log        logger.Logger
}

// NewServer creates the daemon API server
func NewServer(
	cfg *config.Config,
	c cache.Cache,
	engine query.Engine,
	collector stats.Collector,
	eventBus bus.Bus,
	log logger.Logger,
) Server {
	return &server{
		cfg:    cfg,
		cache:  c,
		engine: engine,
		stats:  collector,
		bus:    eventBus,
		hub:    NewHub(cfg.API.Buffer),
		log:    log.WithComponent("SERVER"),
	}
}

// SocketPath returns the socket path for this server
func (s *server) SocketPath() string {
	return s.socketPath
}

// SocketPath resolves the socket location: explicit config wins,
// otherwise the default name under the OS temp directory.
func SocketPath(cfg *config.Config) string {
	if cfg.API.Socket != "" {
		return cfg.API.Socket
	}

	return filepath.Join(os.TempDir(), config.SocketName)
}

// Start binds the Unix socket and begins serving requests
func (s *server) Start(ctx context.Context) error {
	s.socketPath = SocketPath(s.cfg)

	if err := s.cleanupStaleSocket(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToCleanupSocket, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListenSocket, s.socketPath, err)
	}

	s.listener = listener
	s.running.Store(true)
	s.log.Info().Msgf("Listening on %s", s.socketPath)

	serverCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.hub.Run(serverCtx)
	}()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.relayEvents(serverCtx)
	}()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.acceptConnections(serverCtx)
	}()

	return nil
}

// Stop refuses new work, closes the listener and waits for connections
func (s *server) Stop() error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)

	if s.cancel != nil {
		s.cancel()
	}

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msgf("Failed to remove socket file: %s", s.socketPath)
	}

	s.log.Info().Msg("Server stopped")

	return nil
}

// cleanupStaleSocket removes a leftover socket file if nothing answers it
func (s *server) cleanupStaleSocket() error {
	if _, err := os.Stat(s.socketPath); os.IsNotExist(err) {
		return nil
	}

	conn, err := net.DialTimeout("unix", s.socketPath, config.DialTimeout)
	if err == nil {
		conn.Close()

		return fmt.Errorf("%w: %s", errors.ErrSocketInUse, s.socketPath)
	}

	s.log.Info().Msgf("Removing stale socket: %s", s.socketPath)

	return os.Remove(s.socketPath)
}

// relayEvents forwards bus traffic to subscribed clients
func (s *server) relayEvents(ctx context.Context) {
	events := s.bus.Subscribe(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}

			s.hub.Broadcast(frameFromMessage(msg))
		}
	}
}

// acceptConnections handles incoming client connections
func (s *server) acceptConnections(ctx context.Context) {
	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				s.log.Error().Err(err).Msg("Failed to accept connection")
			}

			continue
		}

		s.wg.Add(1)

		go func(c net.Conn) {
			defer s.wg.Done()

			s.handleConnection(ctx, c)
		}(conn)
	}
}

// handleConnection processes a single client connection
func (s *server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connID := s.connID.Add(1)
	clientID := fmt.Sprintf("client-%d", connID)

	s.log.Debug().Msgf("Client connected: %s", clientID)

	reader := bufio.NewReader(conn)

	line, err := reader.ReadBytes('\n')
	if err != nil {
		s.log.Debug().Err(err).Msgf("Failed to read request from %s", clientID)
		return
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.respond(conn, clientID, errorResponse(fmt.Sprintf("malformed request: %v", err)))
		return
	}

	if !s.running.Load() {
		s.respond(conn, clientID, errorResponse(errors.ErrServerShuttingDown.Error()))
		return
	}

	if req.Type == RequestSubscribeEvents {
		s.streamEvents(ctx, conn, clientID, req)
		return
	}

	s.respond(conn, clientID, s.dispatch(req))
}

// dispatch routes a request to the matching handler
func (s *server) dispatch(req Request) Response {
	switch req.Type {
	case RequestStatus:
		return Response{OK: true, Status: &StatusReply{
			Version: config.Version,
			Socket:  s.socketPath,
			Process: s.stats.Snapshot(),
			Roots:   s.cache.Entries(),
		}}
	case RequestSymbol:
		decls, err := s.engine.Symbol(req.Root, req.Name)
		if err != nil {
			return errorResponse(err.Error())
		}

		return Response{OK: true, Declarations: decls}
	case RequestDoc:
		decls, err := s.engine.Doc(req.Root, req.Name)
		if err != nil {
			return errorResponse(err.Error())
		}

		return Response{OK: true, Declarations: decls}
	case RequestRefs:
		refs, err := s.engine.References(req.Root, req.Name)
		if err != nil {
			return errorResponse(err.Error())
		}

		return Response{OK: true, References: refs}
	default:
		return errorResponse(fmt.Sprintf("%v: %s", errors.ErrUnknownRequest, req.Type))
	}
}

// streamEvents serves a subscribe_events connection until it drops
func (s *server) streamEvents(ctx context.Context, conn net.Conn, clientID string, req Request) {
	sub := NewSubscriber(clientID, s.cfg.API.Buffer)
	sub.SetFilter(req.Roots)
	s.hub.Register(sub)

	defer s.hub.Unregister(sub)

	s.log.Debug().Msgf("Client %s subscribed to events (roots: %v)", clientID, req.Roots)

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-sub.SendChan:
			if !ok {
				return
			}

			data, err := json.Marshal(frame)
			if err != nil {
				s.log.Error().Err(err).Msgf("Failed to marshal frame for %s", clientID)
				continue
			}

			data = append(data, '\n')
			if _, err := conn.Write(data); err != nil {
				s.log.Debug().Err(err).Msgf("Client %s disconnected", clientID)
				return
			}
		}
	}
}

// respond writes a single response line and logs write failures
func (s *server) respond(conn net.Conn, clientID string, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msgf("Failed to marshal response for %s", clientID)
		return
	}

	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Debug().Err(err).Msgf("Client %s disconnected", clientID)
	}
}

func errorResponse(reason string) Response {
	return Response{OK: false, Error: reason}
}
