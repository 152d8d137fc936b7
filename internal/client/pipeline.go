package client

import (
	"io"
	"time"

	"github.com/eternalApril/lunar/internal/resp"
	"go.uber.org/zap"
)

// pendingCommand is an encoded request waiting to be sent
type pendingCommand struct {
	name    string
	payload []byte
}

// Pipeline batches commands into a single write and reads back exactly one reply per command,
// in queue order. A Pipeline is not safe for concurrent use
type Pipeline struct {
	cmdable

	transport Transport
	replies   *replyReader
	queue     []pendingCommand
	logger    *zap.Logger
}

// NewPipeline creates a pipeline that owns the reply stream of t.
// Use Client.Pipeline when the transport is shared with a Client
func NewPipeline(t Transport, readSize int, logger *zap.Logger) *Pipeline {
	return newPipeline(t, newReplyReader(t, readSize), logger)
}

func newPipeline(t Transport, replies *replyReader, logger *zap.Logger) *Pipeline {
	p := &Pipeline{
		transport: t,
		replies:   replies,
		logger:    logger,
	}
	p.cmdable = p.Enqueue
	return p
}

// Enqueue encodes a command and appends it to the queue. Nothing is sent until Execute
func (p *Pipeline) Enqueue(name string, args ...string) {
	p.queue = append(p.queue, pendingCommand{
		name:    name,
		payload: resp.EncodeCommand(name, args...),
	})
}

// Len returns the number of queued commands
func (p *Pipeline) Len() int {
	return len(p.queue)
}

// Reset drops every queued command without sending anything
func (p *Pipeline) Reset() {
	p.queue = p.queue[:0]
}

// Execute sends every queued command in one write and returns their replies, reply i
// answering command i. Server error replies are returned as values; transport failures
// fail the whole call and leave the queue untouched
func (p *Pipeline) Execute() ([]resp.Value, error) {
	if len(p.queue) == 0 {
		return []resp.Value{}, nil
	}

	start := time.Now()

	size := 0
	for _, cmd := range p.queue {
		size += len(cmd.payload)
	}
	payload := make([]byte, 0, size)
	for _, cmd := range p.queue {
		payload = append(payload, cmd.payload...)
	}

	n, err := p.transport.Write(payload)
	if err == nil && n < len(payload) {
		err = io.ErrShortWrite
	}
	if err != nil {
		p.logger.Warn("pipeline write failed",
			zap.Int("commands", len(p.queue)),
			zap.Int("written", n),
			zap.Int("size", len(payload)),
			zap.Error(err),
		)
		return nil, &ConnectionError{Op: "write", Err: err}
	}

	values := make([]resp.Value, 0, len(p.queue))
	for len(values) < len(p.queue) {
		v, err := p.replies.next()
		if err != nil {
			p.logger.Warn("pipeline read failed",
				zap.Int("commands", len(p.queue)),
				zap.Int("replies", len(values)),
				zap.Error(err),
			)
			return nil, err
		}
		values = append(values, v)
	}

	if p.logger.Core().Enabled(zap.DebugLevel) {
		p.logger.Debug("pipeline executed",
			zap.Int("commands", len(p.queue)),
			zap.String("first", p.queue[0].name),
			zap.Int("bytes", len(payload)),
			zap.Duration("duration", time.Since(start)),
		)
	}

	p.Reset()
	return values, nil
}
