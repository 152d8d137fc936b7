package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/eternalApril/lunar/internal/resp"
)

var (
	// ErrTruncated is returned when the input ends in the middle of a frame
	ErrTruncated = errors.New("truncated command frame")

	// ErrNotCommand is returned for a frame that is not a non-empty array of bulk strings
	ErrNotCommand = errors.New("frame is not a command")
)

// LoadFile reads a command file in AOF format. A missing file yields no commands
func LoadFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close() //nolint:errcheck

	return Load(file)
}

// Load parses a stream of command frames, i.e. RESP arrays of bulk strings as written
// to an append-only file or piped to redis-cli --pipe
func Load(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var commands [][]string
	for off := 0; off < len(data); {
		end, ok := resp.ScanFrame(data[off:])
		if !ok {
			return nil, fmt.Errorf("%w at offset %d", ErrTruncated, off)
		}

		v, _ := resp.Decode(data[off : off+end])
		cmd, err := toCommand(v)
		if err != nil {
			return nil, fmt.Errorf("%w at offset %d", err, off)
		}

		commands = append(commands, cmd)
		off += end
	}

	return commands, nil
}

func toCommand(v resp.Value) ([]string, error) {
	if v.Type != resp.TypeArray || v.Null || len(v.Array) == 0 {
		return nil, ErrNotCommand
	}

	cmd := make([]string, len(v.Array))
	for i, el := range v.Array {
		if el.Type != resp.TypeBulkString || el.Null {
			return nil, fmt.Errorf("%w: element %d is not a bulk string", ErrNotCommand, i)
		}
		cmd[i] = el.String()
	}

	if cmd[0] == "" {
		return nil, fmt.Errorf("%w: empty command name", ErrNotCommand)
	}

	return cmd, nil
}
