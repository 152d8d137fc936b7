package client

import (
	"bytes"
	"io"
	"math/rand"
	"strings"

	"github.com/eternalApril/lunar/internal/resp"
)

// scriptedTransport replays a canned server reply stream in chunks chosen by chunk
// and records everything written to it
type scriptedTransport struct {
	reply    []byte
	chunk    func(remaining int) int
	written  bytes.Buffer
	writes   int
	reads    int
	writeErr error
	short    bool
	closed   bool
}

func newScripted(reply string, chunk func(remaining int) int) *scriptedTransport {
	if chunk == nil {
		chunk = wholeChunks
	}
	return &scriptedTransport{reply: []byte(reply), chunk: chunk}
}

func (s *scriptedTransport) Read(p []byte) (int, error) {
	s.reads++
	if len(s.reply) == 0 {
		return 0, io.EOF
	}

	n := min(len(p), max(1, s.chunk(len(s.reply))), len(s.reply))
	copy(p, s.reply[:n])
	s.reply = s.reply[n:]
	return n, nil
}

func (s *scriptedTransport) Write(p []byte) (int, error) {
	s.writes++
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	if s.short {
		s.written.Write(p[:len(p)/2])
		return len(p) / 2, nil
	}
	return s.written.Write(p)
}

func (s *scriptedTransport) Close() error {
	s.closed = true
	return nil
}

func wholeChunks(remaining int) int {
	return remaining
}

func singleByteChunks(int) int {
	return 1
}

func randomChunks(seed int64) func(int) int {
	r := rand.New(rand.NewSource(seed))
	return func(remaining int) int {
		return 1 + r.Intn(remaining)
	}
}

// commands encodes a sequence of commands the way a pipeline sends them
func commands(cmds ...[]string) string {
	var buf []byte
	for _, cmd := range cmds {
		buf = resp.AppendCommand(buf, cmd[0], cmd[1:]...)
	}
	return string(buf)
}

// encodeValues renders values as a server reply stream
func encodeValues(values ...resp.Value) string {
	var sb strings.Builder
	enc := resp.NewEncoder(&sb)
	for _, v := range values {
		if err := enc.Write(v); err != nil {
			panic(err)
		}
	}
	if err := enc.Flush(); err != nil {
		panic(err)
	}
	return sb.String()
}
