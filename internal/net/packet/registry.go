package packet

import (
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"go.uber.org/zap"
)

// HandlerFunc translates one decoded packet into zero, one or many events.
// st is the inventory accumulator of the session that received the packet.
type HandlerFunc func(st *Reassembly, r *Reader) (gameplay.Events, error)

// DuplicateHandlerError is returned when a header is registered twice.
type DuplicateHandlerError struct {
	Header Header
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("duplicate handler for header %s", e.Header)
}

// Registry maps headers to handlers for one phase. It is filled once at
// startup and read-only afterwards.
type Registry struct {
	handlers map[Header]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[Header]HandlerFunc),
		log:      log,
	}
}

// Register binds a header to a handler.
func (reg *Registry) Register(h Header, fn HandlerFunc) error {
	if _, ok := reg.handlers[h]; ok {
		return &DuplicateHandlerError{Header: h}
	}
	reg.handlers[h] = fn
	return nil
}

// RegisterNoop marks headers as expected but without any event.
func (reg *Registry) RegisterNoop(headers ...Header) error {
	for _, h := range headers {
		if err := reg.Register(h, noop); err != nil {
			return err
		}
	}
	return nil
}

func noop(*Reassembly, *Reader) (gameplay.Events, error) {
	return gameplay.NoEvents(), nil
}

// Handles reports whether h has a handler.
func (reg *Registry) Handles(h Header) bool {
	_, ok := reg.handlers[h]
	return ok
}

// Len returns the number of registered headers.
func (reg *Registry) Len() int {
	return len(reg.handlers)
}

// Dispatch decodes one frame payload. Unknown headers are logged and
// produce no events; the frame is consumed either way.
func (reg *Registry) Dispatch(st *Reassembly, data []byte) (gameplay.Events, error) {
	if len(data) < 2 {
		return gameplay.NoEvents(), fmt.Errorf("%w: frame of %d bytes has no header", ErrShortPacket, len(data))
	}
	r := NewReader(data)
	h := r.Header()

	fn, ok := reg.handlers[h]
	if !ok {
		reg.log.Debug("unknown packet",
			zap.Stringer("header", h),
			zap.Int("size", len(data)),
		)
		return gameplay.NoEvents(), nil
	}

	events, err := reg.safeCall(fn, st, r, h)
	if err != nil {
		return gameplay.NoEvents(), err
	}
	if err := r.Err(); err != nil {
		return gameplay.NoEvents(), err
	}
	return events, nil
}

// safeCall executes a handler with panic recovery so a single malformed
// packet cannot take down the read loop.
func (reg *Registry) safeCall(fn HandlerFunc, st *Reassembly, r *Reader, h Header) (events gameplay.Events, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("packet handler panic recovered",
				zap.Stringer("header", h),
				zap.Any("panic", rec),
			)
			events = gameplay.NoEvents()
			err = fmt.Errorf("handler panic for header %s: %v", h, rec)
		}
	}()
	return fn(st, r)
}
