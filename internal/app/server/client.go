//go:generate mockgen -source=client.go -destination=client_mock.go -package=server
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"lens/internal/app/errors"
	"lens/internal/app/query"
	"lens/internal/config"
)

// Client dials a running daemon. The protocol is one request and one
// response per connection, so every call opens its own connection.
type Client interface {
	Status() (*StatusReply, error)
	Symbol(root, name string) ([]query.Declaration, error)
	Doc(root, name string) ([]query.Declaration, error)
	References(root, name string) ([]query.Reference, error)
	Events(ctx context.Context, roots []string, handle func(EventFrame)) error
}

type client struct {
	socketPath string
}

// NewClient creates a client for the daemon listening on socketPath
func NewClient(socketPath string) Client {
	return &client{socketPath: socketPath}
}

// Status fetches daemon and cache status
func (c *client) Status() (*StatusReply, error) {
	resp, err := c.roundTrip(Request{Type: RequestStatus})
	if err != nil {
		return nil, err
	}

	return resp.Status, nil
}

// Symbol fetches declarations of name under root
func (c *client) Symbol(root, name string) ([]query.Declaration, error) {
	resp, err := c.roundTrip(Request{Type: RequestSymbol, Root: root, Name: name})
	if err != nil {
		return nil, err
	}

	return resp.Declarations, nil
}

// Doc fetches declarations of name under root with doc comments
func (c *client) Doc(root, name string) ([]query.Declaration, error) {
	resp, err := c.roundTrip(Request{Type: RequestDoc, Root: root, Name: name})
	if err != nil {
		return nil, err
	}

	return resp.Declarations, nil
}

// References fetches use sites of name under root
func (c *client) References(root, name string) ([]query.Reference, error) {
	resp, err := c.roundTrip(Request{Type: RequestRefs, Root: root, Name: name})
	if err != nil {
		return nil, err
	}

	return resp.References, nil
}

// Events streams event frames to handle until ctx is cancelled or the
// daemon closes the connection. A nil error means the stream ended
// normally.
func (c *client) Events(ctx context.Context, roots []string, handle func(EventFrame)) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}

	defer conn.Close()

	if err := writeRequest(conn, Request{Type: RequestSubscribeEvents, Roots: roots}); err != nil {
		return err
	}

	// Unblock the read below when the caller gives up.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil || err == io.EOF {
				return nil
			}

			return fmt.Errorf("%w: %w", errors.ErrFailedToReadSocket, err)
		}

		var frame EventFrame
		if err := json.Unmarshal(line, &frame); err != nil {
			continue
		}

		if frame.Type == "" {
			// The server answered with a plain response instead of a
			// stream, which only happens when it rejected the request.
			var resp Response
			if json.Unmarshal(line, &resp) == nil && !resp.OK && resp.Error != "" {
				return errors.New(resp.Error)
			}

			continue
		}

		handle(frame)
	}
}

func (c *client) roundTrip(req Request) (*Response, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, err
	}

	defer conn.Close()

	if err := writeRequest(conn, req); err != nil {
		return nil, err
	}

	reader := bufio.NewReader(conn)

	line, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadSocket, err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadSocket, err)
	}

	if !resp.OK {
		return nil, errors.New(resp.Error)
	}

	return &resp, nil
}

func (c *client) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, config.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDaemonNotReachable, err)
	}

	return conn, nil
}

func writeRequest(conn net.Conn, req Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSocket, err)
	}

	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteSocket, err)
	}

	return nil
}
