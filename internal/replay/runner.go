package replay

import (
	"time"

	"github.com/eternalApril/lunar/internal/client"
	"github.com/eternalApril/lunar/internal/resp"
	"go.uber.org/zap"
)

// maxLoggedErrors caps how many error replies Run logs individually
const maxLoggedErrors = 10

// Stats summarizes a replay
type Stats struct {
	Commands int
	Replies  int
	Errors   int // error replies from the server
	Batches  int
}

// PipelineFactory creates an empty pipeline, e.g. (*client.Client).Pipeline
type PipelineFactory func() *client.Pipeline

// Run sends commands in pipelined batches of batchSize and counts the replies.
// It stops at the first transport failure
func Run(newPipeline PipelineFactory, commands [][]string, batchSize int, logger *zap.Logger) (Stats, error) {
	var stats Stats
	start := time.Now()

	if batchSize <= 0 {
		batchSize = len(commands)
	}

	for off := 0; off < len(commands); off += batchSize {
		batch := commands[off:min(off+batchSize, len(commands))]

		p := newPipeline()
		for _, cmd := range batch {
			p.Enqueue(cmd[0], cmd[1:]...)
		}

		values, err := p.Execute()
		if err != nil {
			return stats, err
		}

		stats.Batches++
		stats.Commands += len(batch)
		stats.Replies += len(values)
		for i, v := range values {
			if !v.IsError() {
				continue
			}
			stats.Errors++
			if stats.Errors <= maxLoggedErrors {
				logError(logger, off+i, batch[i], v)
			}
		}
	}

	logger.Info("replay finished",
		zap.Int("commands", stats.Commands),
		zap.Int("errors", stats.Errors),
		zap.Int("batches", stats.Batches),
		zap.Duration("duration", time.Since(start)),
	)

	return stats, nil
}

func logError(logger *zap.Logger, index int, cmd []string, v resp.Value) {
	logger.Warn("command rejected",
		zap.Int("index", index),
		zap.String("cmd", cmd[0]),
		zap.String("error", v.String()),
	)
}
