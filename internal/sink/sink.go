// Package sink provides the shared byte buffer that benchmark workers
// append to, and the fixed payload every worker writes.
//
// A Buffer performs no locking of its own. Exactly one writer may call
// Write at any instant; arranging that is the job of the caller's
// synchronization strategy.
//
// Two construction modes are offered because they allocate differently:
//   - Presized: capacity for every write is reserved up front
//   - Growable: starts empty and reallocates as writes arrive
package sink

import (
	"strings"

	"github.com/pkg/errors"
)

// PayloadLen is the size in bytes of the payload each worker writes.
const PayloadLen = 10

// payload is shared read-only by all workers.
var payload = [PayloadLen]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// Payload returns a copy of the fixed payload.
func Payload() []byte {
	p := payload
	return p[:]
}

// ErrCapacity is returned by Write when a pre-sized buffer would overflow.
var ErrCapacity = errors.New("sink: write exceeds reserved capacity")

// Mode selects how a Buffer reserves memory.
type Mode int

const (
	// Presized reserves workers*PayloadLen bytes before the first write.
	Presized Mode = iota
	// Growable starts empty and grows with append.
	Growable
)

// Modes lists every supported mode.
var Modes = []Mode{Presized, Growable}

func (m Mode) String() string {
	switch m {
	case Presized:
		return "presized"
	case Growable:
		return "growable"
	default:
		return "unknown"
	}
}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "presized", "pre-sized":
		return Presized, nil
	case "growable":
		return Growable, nil
	}
	return 0, errors.Errorf("sink: unknown mode %q", s)
}

// Buffer is an append-only byte buffer.
type Buffer struct {
	buf   []byte
	fixed bool
}

// New creates a Buffer sized for the given number of workers.
func New(mode Mode, workers int) *Buffer {
	if mode == Growable {
		return &Buffer{}
	}
	return WithCapacity(workers * PayloadLen)
}

// WithCapacity creates a pre-sized Buffer holding at most n bytes.
func WithCapacity(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{
		buf:   make([]byte, 0, n),
		fixed: true,
	}
}

// Write appends p to the buffer.
//
// A pre-sized buffer rejects the whole write with ErrCapacity rather than
// reallocating.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.fixed && len(b.buf)+len(p) > cap(b.buf) {
		return 0, errors.Wrapf(ErrCapacity, "len=%d cap=%d write=%d", len(b.buf), cap(b.buf), len(p))
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WritePayload appends one copy of the shared payload.
func (b *Buffer) WritePayload() error {
	_, err := b.Write(payload[:])
	return err
}

// Bytes returns the buffer contents. The slice aliases the buffer and must
// not be modified.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Presized reports whether the buffer refuses to grow.
func (b *Buffer) Presized() bool {
	return b.fixed
}
