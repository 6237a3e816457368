package server

import (
	"bufio"
	"context"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lens/internal/app/errors"
)

// fakeDaemon accepts one connection, reads one request line and writes
// reply followed by a newline before closing.
func fakeDaemon(t *testing.T, reply string) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "lens.sock")

	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)

	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}

		defer conn.Close()

		if _, err := bufio.NewReader(conn).ReadBytes('\n'); err != nil {
			return
		}

		_, _ = conn.Write([]byte(reply + "\n"))
	}()

	return socketPath
}

func Test_NewClient(t *testing.T) {
	c := NewClient("/tmp/lens.sock")
	require.NotNil(t, c)

	assert.Equal(t, "/tmp/lens.sock", c.(*client).socketPath)
}

func Test_Client_DaemonNotReachable(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "absent.sock"))

	_, err := c.Status()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDaemonNotReachable))
}

func Test_Client_ErrorResponse(t *testing.T) {
	socketPath := fakeDaemon(t, `{"ok":false,"error":"workspace root is not cached: /work/app"}`)

	_, err := NewClient(socketPath).Symbol("/work/app", "Route")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not cached")
}

func Test_Client_MalformedResponse(t *testing.T) {
	socketPath := fakeDaemon(t, "garbage")

	_, err := NewClient(socketPath).Status()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFailedToReadSocket))
}

func Test_Client_Events_StreamEndsOnEOF(t *testing.T) {
	lines := []string{
		`{"type":"build_started","root":"/work/app"}`,
		`{"type":"change_applied","root":"/work/app","path":"/work/app/main.go","op":"create","status":"applied"}`,
	}
	socketPath := fakeDaemon(t, strings.Join(lines, "\n"))

	var got []EventFrame

	err := NewClient(socketPath).Events(context.Background(), nil, func(f EventFrame) {
		got = append(got, f)
	})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "build_started", got[0].Type)
	assert.Equal(t, "change_applied", got[1].Type)
	assert.Equal(t, "/work/app/main.go", got[1].Path)
}

func Test_Client_Events_Rejected(t *testing.T) {
	socketPath := fakeDaemon(t, `{"ok":false,"error":"server is shutting down"}`)

	err := NewClient(socketPath).Events(context.Background(), nil, func(EventFrame) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutting down")
}
