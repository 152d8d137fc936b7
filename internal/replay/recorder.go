package replay

import (
	"bufio"
	"os"

	"github.com/eternalApril/lunar/internal/resp"
)

// Recorder appends commands to a file in the same format Load reads
type Recorder struct {
	file   *os.File
	writer *bufio.Writer
	buf    []byte
}

// NewRecorder opens filename in append mode, creating it if needed
func NewRecorder(filename string) (*Recorder, error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		file:   f,
		writer: bufio.NewWriter(f),
	}, nil
}

// Record buffers one command
func (r *Recorder) Record(cmd []string) error {
	r.buf = resp.AppendCommand(r.buf[:0], cmd[0], cmd[1:]...)
	_, err := r.writer.Write(r.buf)
	return err
}

// Close flushes buffered commands, syncs and closes the file
func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		r.file.Close() //nolint:errcheck
		return err
	}
	if err := r.file.Sync(); err != nil {
		r.file.Close() //nolint:errcheck
		return err
	}
	return r.file.Close()
}
