package bridge

import (
	"io"
	"os"
	"sync"

	"github.com/marten/simbridge/internal/datadir"
	"github.com/rs/zerolog"
)

// lazyLogFile is an io.Writer that opens the controller log in append mode
// on first write, creating the data directories as needed. Open failures
// degrade to discarding output: the log is a diagnostic sink, and the
// channel must never crash the tick loop over it.
type lazyLogFile struct {
	paths *datadir.Paths

	mu     sync.Mutex
	opened bool
	f      *os.File
}

func (l *lazyLogFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.opened {
		l.opened = true
		if err := l.paths.EnsureDirs(); err == nil {
			f, err := os.OpenFile(l.paths.ControllerLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				l.f = f
			}
		}
	}
	if l.f == nil {
		return len(p), nil
	}
	return l.f.Write(p)
}

func (l *lazyLogFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// newLogger builds the producer-side logger: one timestamped line per
// event, appended to <data>/logs/controller.log.
func newLogger(paths *datadir.Paths, sink io.Writer) zerolog.Logger {
	if sink == nil {
		sink = &lazyLogFile{paths: paths}
	}
	out := zerolog.ConsoleWriter{
		Out:        sink,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(out).With().Timestamp().Logger()
}
