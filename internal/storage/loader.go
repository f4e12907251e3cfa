package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jimsharma206/UM-TerrorismDW-Project/internal/metrics"
)

// DefaultBatchSize is used when the pipeline does not set one. GTD-scale
// inputs (around 180k rows) load in a few hundred batches at this size.
const DefaultBatchSize = 1000

// CopyFn abstracts a backend's bulk insert. Implementations insert the given
// rows (aligned to columns order), return the number of rows inserted, and
// cancel promptly when ctx is done. Repository.CopyFrom satisfies this shape.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches drains typed rows from in, groups them into batches of
// batchSize, and calls copyFn for each non-empty batch. It returns the total
// number of rows reported inserted and the first error encountered. On
// cancellation it returns (total, ctx.Err()).
//
// Every successful flush logs a progress line with running totals and the
// instantaneous rows/sec since the previous flush, and counts toward the
// job's batch and inserted-record metrics.
func LoadBatches(
	ctx context.Context,
	job string,
	columns []string,
	in <-chan []any,
	batchSize int,
	copyFn CopyFn,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("storage: batch size must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("storage: copy function must not be nil")
	}

	var (
		total     int64
		batches   int64
		batch     = make([][]any, 0, batchSize)
		start     = time.Now()
		lastFlush = start
		lastTotal int64
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, columns, batch)
		total += n
		batch = batch[:0] // keep capacity

		if err != nil {
			log.Printf("loader: bulk insert failed after=%d total=%d err=%v", n, total, err)
			return err
		}

		batches++
		metrics.RecordBatches(job, 1)
		metrics.RecordRow(job, "inserted", n)

		now := time.Now()
		sinceLast := now.Sub(lastFlush)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(total-lastTotal) / sinceLast.Seconds()
		}
		log.Printf(
			"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			batches, rps, n, total, now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlush = now
		lastTotal = total
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()

		case row, ok := <-in:
			if !ok {
				if err := flush(); err != nil {
					return total, err
				}
				log.Printf("loader: input closed, batches=%d total_inserted=%d", batches, total)
				return total, nil
			}
			batch = append(batch, row)
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}
}
