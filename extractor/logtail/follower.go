package logtail

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/peer-observer/peer-observer/errors"
)

// Follower is an io.Reader that tails a file: at end of file it polls for
// new data instead of returning EOF, and it survives truncation and rotation
// of the underlying file. Close releases a blocked Read with io.EOF.
type Follower struct {
	path string
	poll time.Duration

	mu     sync.Mutex
	file   *os.File
	closed chan struct{}
	once   sync.Once
}

// NewFollower opens path for following. With fromEnd, reading starts at the
// current end of the file, skipping existing content the way the node's own
// log rotation would.
func NewFollower(path string, fromEnd bool, poll time.Duration) (*Follower, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Follower", "NewFollower", "open log file")
	}
	if fromEnd {
		if _, err := file.Seek(0, io.SeekEnd); err != nil {
			_ = file.Close()
			return nil, errors.WrapFatal(err, "Follower", "NewFollower", "seek to end")
		}
	}
	if poll <= 0 {
		poll = 250 * time.Millisecond
	}
	return &Follower{
		path:   path,
		poll:   poll,
		file:   file,
		closed: make(chan struct{}),
	}, nil
}

// Read returns available data, polling at the configured interval when the
// file has no new content.
func (f *Follower) Read(p []byte) (int, error) {
	for {
		select {
		case <-f.closed:
			return 0, io.EOF
		default:
		}

		f.mu.Lock()
		n, err := f.file.Read(p)
		f.mu.Unlock()
		if n > 0 {
			return n, nil
		}
		if err != nil && err != io.EOF {
			// A concurrent Close closes the file under us.
			select {
			case <-f.closed:
				return 0, io.EOF
			default:
				return 0, err
			}
		}

		f.checkRotation()

		select {
		case <-f.closed:
			return 0, io.EOF
		case <-time.After(f.poll):
		}
	}
}

// checkRotation re-opens the file after truncation or replacement so the
// follower keeps up with logrotate-style handling.
func (f *Follower) checkRotation() {
	stat, err := os.Stat(f.path)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.file.Stat()
	if err != nil {
		return
	}

	if !os.SameFile(stat, current) {
		// Replaced: switch to the new file from the start.
		if file, err := os.Open(f.path); err == nil {
			_ = f.file.Close()
			f.file = file
		}
		return
	}

	pos, err := f.file.Seek(0, io.SeekCurrent)
	if err == nil && stat.Size() < pos {
		// Truncated in place: start over.
		_, _ = f.file.Seek(0, io.SeekStart)
	}
}

// Close stops the follower. It is safe to call concurrently with Read.
func (f *Follower) Close() error {
	var err error
	f.once.Do(func() {
		close(f.closed)
		f.mu.Lock()
		err = f.file.Close()
		f.mu.Unlock()
	})
	return err
}
