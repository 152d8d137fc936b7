package client

import (
	"errors"
	"io"
	"slices"

	"github.com/eternalApril/lunar/internal/resp"
)

// replyReader slices the reply stream of one transport into frames.
// Bytes past the last returned frame are kept for the next call
type replyReader struct {
	rd       io.Reader
	buf      []byte
	start    int // first byte not yet returned as part of a frame
	scanner  resp.Scanner
	readSize int
}

func newReplyReader(rd io.Reader, readSize int) *replyReader {
	if readSize <= 0 {
		readSize = 16 * 1024
	}
	return &replyReader{
		rd:       rd,
		readSize: readSize,
	}
}

// next blocks until one complete frame is buffered and returns it decoded
func (r *replyReader) next() (resp.Value, error) {
	for {
		if end, ok := r.scanner.Scan(r.buf[r.start:]); ok {
			v, _ := resp.Decode(r.buf[r.start : r.start+end])
			r.start += end
			return v, nil
		}

		if err := r.fill(); err != nil {
			return resp.Value{}, err
		}
	}
}

// fill performs one read from the transport
func (r *replyReader) fill() error {
	// moving the unread tail to the front keeps its bytes and relative offsets intact,
	// so the scanner state stays valid
	if r.start > 0 {
		n := copy(r.buf, r.buf[r.start:])
		r.buf = r.buf[:n]
		r.start = 0
	}

	r.buf = slices.Grow(r.buf, r.readSize)

	n, err := r.rd.Read(r.buf[len(r.buf):cap(r.buf)])
	r.buf = r.buf[:len(r.buf)+n]
	if n > 0 {
		return nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &ConnectionError{Op: "read", Err: err}
}

// buffered returns the number of received bytes not yet returned as frames
func (r *replyReader) buffered() int {
	return len(r.buf) - r.start
}
