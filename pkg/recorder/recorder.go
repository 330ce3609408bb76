// Package recorder writes and replays a deterministic, bit-exact binary
// trace of every event a simulation run emits. Two runs seeded and fed
// identically must produce byte-identical trace files; the wire format
// (google.golang.org/protobuf's low-level protowire encoding) is
// used precisely because it has no map iteration, no floating point, and
// no ambient state to make two encodings of the same value diverge.
package recorder

import (
	"bufio"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/ravikoss/backforge/pkg/bus"
	"github.com/ravikoss/backforge/pkg/common"
)

// Recorder implements common.EventSink by appending every event it is
// handed to an underlying writer as a length-prefixed frame:
//
//	varint(frame length) | kind byte | protowire-encoded payload
//
// It never returns an error to the caller: a write failure is recorded
// internally and surfaced through Err, mirroring the simulator's own
// rule that admission and lifecycle decisions never fail out-of-band.
type Recorder struct {
	w   *bufio.Writer
	err error
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

func (r *Recorder) Emit(ev any) {
	if r.err != nil {
		return
	}
	kind, ok := bus.KindOf(ev)
	if !ok {
		return
	}
	payload := encode(kind, ev)
	r.writeFrame(kind, payload)
}

func (r *Recorder) writeFrame(kind bus.EventKind, payload []byte) {
	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, byte(kind))
	frame = append(frame, payload...)

	var lenBuf []byte
	lenBuf = protowire.AppendVarint(lenBuf, uint64(len(frame)))

	if _, err := r.w.Write(lenBuf); err != nil {
		r.err = err
		return
	}
	if _, err := r.w.Write(frame); err != nil {
		r.err = err
	}
}

// Flush pushes any buffered frames to the underlying writer. Callers
// must call it once at the end of a run.
func (r *Recorder) Flush() error {
	if r.err != nil {
		return r.err
	}
	return r.w.Flush()
}

func (r *Recorder) Err() error { return r.err }

func encode(kind bus.EventKind, ev any) []byte {
	switch kind {
	case bus.TickEvent:
		return encodeTick(ev.(common.Tick))
	case bus.BarEvent:
		return encodeBar(ev.(common.Bar))
	case bus.OrderSubmittedEvent:
		return encodeOrderSubmitted(ev.(common.OrderSubmitted))
	case bus.OrderAcceptedEvent:
		return encodeOrderAccepted(ev.(common.OrderAccepted))
	case bus.OrderRejectedEvent:
		return encodeOrderRejected(ev.(common.OrderRejected))
	case bus.OrderWorkingEvent:
		return encodeOrderWorking(ev.(common.OrderWorking))
	case bus.OrderModifiedEvent:
		return encodeOrderModified(ev.(common.OrderModified))
	case bus.OrderCancelledEvent:
		return encodeOrderCancelled(ev.(common.OrderCancelled))
	case bus.OrderCancelRejectEvent:
		return encodeOrderCancelReject(ev.(common.OrderCancelReject))
	case bus.OrderExpiredEvent:
		return encodeOrderExpired(ev.(common.OrderExpired))
	case bus.OrderFilledEvent:
		return encodeOrderFilled(ev.(common.OrderFilled))
	case bus.AccountEvent:
		return encodeAccountEvent(ev.(common.AccountEvent))
	default:
		return nil
	}
}

// Record is a single decoded trace frame, returned by Player for tests
// and offline tooling that verify reproducibility byte-for-byte without
// needing to reconstruct the original typed event.
type Record struct {
	Kind    bus.EventKind
	Payload []byte
}

// Player reads back the frames a Recorder wrote, in order.
type Player struct {
	r *bufio.Reader
}

func NewPlayer(r io.Reader) *Player {
	return &Player{r: bufio.NewReader(r)}
}

// Next returns the next recorded frame, or io.EOF when the trace is
// exhausted.
func (p *Player) Next() (Record, error) {
	frameLen, err := readVarint(p.r)
	if err != nil {
		return Record{}, err
	}
	if frameLen == 0 {
		return Record{}, fmt.Errorf("recorder: empty frame")
	}

	frame := make([]byte, frameLen)
	if _, err := io.ReadFull(p.r, frame); err != nil {
		return Record{}, fmt.Errorf("recorder: short frame: %w", err)
	}

	return Record{Kind: bus.EventKind(frame[0]), Payload: frame[1:]}, nil
}

func readVarint(r *bufio.Reader) (uint64, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		buf = append(buf, b)
		if b&0x80 == 0 {
			break
		}
	}
	v, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, fmt.Errorf("recorder: malformed varint")
	}
	return v, nil
}
