package replay

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eternalApril/lunar/internal/client"
	"github.com/eternalApril/lunar/internal/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	input := string(resp.EncodeCommand("SET", "k", "a\r\nb")) +
		string(resp.EncodeCommand("INCR", "n")) +
		string(resp.EncodeCommand("SET", "empty", ""))

	cmds, err := Load(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"SET", "k", "a\r\nb"},
		{"INCR", "n"},
		{"SET", "empty", ""},
	}, cmds)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Truncated", "*2\r\n$3\r\nGET\r\n", ErrTruncated},
		{"Not an array", "+OK\r\n", ErrNotCommand},
		{"Empty array", "*0\r\n", ErrNotCommand},
		{"Integer element", "*2\r\n$3\r\nGET\r\n:1\r\n", ErrNotCommand},
		{"Null element", "*2\r\n$3\r\nGET\r\n$-1\r\n", ErrNotCommand},
		{"Empty name", "*1\r\n$0\r\n\r\n", ErrNotCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cmds, err := LoadFile(filepath.Join(t.TempDir(), "absent.aof"))

	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.aof")
	want := [][]string{{"SET", "k", "v"}, {"DEL", "k"}, {"PING"}}

	rec, err := NewRecorder(path)
	require.NoError(t, err)
	for _, cmd := range want[:2] {
		require.NoError(t, rec.Record(cmd))
	}
	require.NoError(t, rec.Close())

	// reopening appends
	rec, err = NewRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.Record(want[2]))
	require.NoError(t, rec.Close())

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// echoTransport answers every request frame with a fixed reply, given by reply
type echoTransport struct {
	reply  func(cmd resp.Value) resp.Value
	out    bytes.Buffer
	writes int
}

func (e *echoTransport) Write(p []byte) (int, error) {
	e.writes++
	for off := 0; off < len(p); {
		end, ok := resp.ScanFrame(p[off:])
		if !ok {
			return off, io.ErrShortWrite
		}
		cmd, _ := resp.Decode(p[off : off+end])
		enc := resp.NewEncoder(&e.out)
		if err := enc.Write(e.reply(cmd)); err != nil {
			return off, err
		}
		if err := enc.Flush(); err != nil {
			return off, err
		}
		off += end
	}
	return len(p), nil
}

func (e *echoTransport) Read(p []byte) (int, error) {
	return e.out.Read(p)
}

func (e *echoTransport) Close() error {
	return nil
}

func TestRun(t *testing.T) {
	tr := &echoTransport{reply: func(cmd resp.Value) resp.Value {
		if cmd.Array[0].String() == "BAD" {
			return resp.MakeError("ERR unknown command 'BAD'")
		}
		return resp.MakeSimpleString("OK")
	}}
	c := client.NewClient(tr, 64, zap.NewNop())

	var cmds [][]string
	for i := 0; i < 25; i++ {
		cmds = append(cmds, []string{"SET", "k", "v"})
	}
	cmds[7] = []string{"BAD"}
	cmds[20] = []string{"BAD"}

	stats, err := Run(c.Pipeline, cmds, 10, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, Stats{Commands: 25, Replies: 25, Errors: 2, Batches: 3}, stats)
	assert.Equal(t, 3, tr.writes)
}

func TestRunStopsOnConnectionError(t *testing.T) {
	// a pipeline over a transport that never answers
	broken := func() *client.Pipeline {
		return client.NewPipeline(&silentTransport{}, 64, zap.NewNop())
	}

	stats, err := Run(broken, [][]string{{"PING"}}, 10, zap.NewNop())

	var connErr *client.ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.Zero(t, stats.Commands)
}

type silentTransport struct{}

func (silentTransport) Write(p []byte) (int, error) { return len(p), nil }
func (silentTransport) Read([]byte) (int, error)    { return 0, io.EOF }
func (silentTransport) Close() error                { return nil }
