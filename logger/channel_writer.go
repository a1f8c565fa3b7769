package logger

import (
	"errors"
	"io"
	"sync"
)

// ErrWriterClosed is returned by ChannelWriter.Write after Close.
var ErrWriterClosed = errors.New("channel writer is closed")

// ChannelWriter is an io.Writer that serializes concurrent writes by
// funneling them through a channel drained by a single goroutine.
// It allows multiple goroutines to share one sink without interleaving
// record bytes and without holding a lock for the duration of the
// underlying write.
type ChannelWriter struct {
	target  io.Writer
	records chan []byte
	drained chan struct{}
	mtx     sync.Mutex
	closed  bool
}

var _ io.Writer = (*ChannelWriter)(nil)

// NewChannelWriter returns a new ChannelWriter over the target writer and
// starts its drain goroutine. The bufferSize is the capacity of the intake
// channel; writers block when it is full.
func NewChannelWriter(target io.Writer, bufferSize int) *ChannelWriter {
	if bufferSize < 0 {
		bufferSize = 0
	}
	w := &ChannelWriter{
		target:  target,
		records: make(chan []byte, bufferSize),
		drained: make(chan struct{}),
	}
	go w.drain()
	return w
}

// Write copies p and enqueues it for the drain goroutine.
// It reports the full length of p on success; the actual write to the
// underlying sink happens asynchronously.
func (w *ChannelWriter) Write(p []byte) (int, error) {
	record := make([]byte, len(p))
	copy(record, p)

	w.mtx.Lock()
	if w.closed {
		w.mtx.Unlock()
		return 0, ErrWriterClosed
	}
	w.records <- record
	w.mtx.Unlock()

	return len(p), nil
}

// Close stops accepting new writes, flushes all queued records to the
// underlying sink and waits for the drain goroutine to exit.
// Subsequent calls are no-ops.
func (w *ChannelWriter) Close() error {
	w.mtx.Lock()
	if w.closed {
		w.mtx.Unlock()
		return nil
	}
	w.closed = true
	close(w.records)
	w.mtx.Unlock()

	<-w.drained
	return nil
}

// drain is the single consumer of the records channel.
func (w *ChannelWriter) drain() {
	defer close(w.drained)
	for record := range w.records {
		_, _ = w.target.Write(record)
	}
}
