package pkg

import (
	"io"
	"sync"

	"go.uber.org/multierr"
)

// CombinedWriter tees every write to all of its writers. A write succeeds as
// long as one writer took the whole payload, so a broken stdout does not stop
// the log file from being written. Failures are collected and exposed by Err.
type CombinedWriter struct {
	mutex   sync.Mutex
	writers []io.Writer
	err     error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()

	var errs error
	delivered := false
	for _, w := range cw.writers {
		n, err := w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		delivered = true
	}

	cw.err = multierr.Append(cw.err, errs)
	if !delivered && len(cw.writers) > 0 {
		return 0, errs
	}
	return len(p), nil
}

// Err returns every write failure seen so far.
func (cw *CombinedWriter) Err() error {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	return cw.err
}
