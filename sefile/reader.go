package sefile

import (
	"bytes"
	"fmt"
	"math"

	"github.com/dhanmoti/sweph/endian"
	"github.com/dhanmoti/sweph/errs"
)

// reader is a positioned cursor over the in-memory file image. The image is
// never modified; every File method that reads creates its own reader, so
// concurrent readers of immutable state cannot trample each other's cursor.
type reader struct {
	data  []byte
	pos   int
	order endian.EndianEngine
}

func newReader(data []byte, order endian.EndianEngine) *reader {
	return &reader{data: data, order: order}
}

func (r *reader) seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: seek to %d in %d-byte image", errs.ErrShortRead, pos, len(r.data))
	}
	r.pos = pos

	return nil
}

// readLine consumes bytes up to and including the next CR LF pair and
// returns the preceding span as text.
func (r *reader) readLine() (string, error) {
	idx := bytes.Index(r.data[r.pos:], []byte("\r\n"))
	if idx < 0 {
		return "", fmt.Errorf("%w: missing CRLF terminator", errs.ErrInvalidHeader)
	}

	line := string(r.data[r.pos : r.pos+idx])
	r.pos += idx + 2

	return line, nil
}

// readBytes advances the cursor by n bytes and returns the raw span.
// The span aliases the image; callers must not modify it.
func (r *reader) readBytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", errs.ErrShortRead, n, r.pos)
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *reader) readUint8() (uint8, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *reader) readInt16() (int16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}

	return int16(r.order.Uint16(b)), nil
}

func (r *reader) readInt32() (int32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}

	return int32(r.order.Uint32(b)), nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}

	return r.order.Uint32(b), nil
}

// readUintN reads an unsigned integer of 1 to 4 on-disk bytes, widening it
// to 32 bits. Narrow values occupy the low-magnitude bytes of the target:
// for a little-endian file the on-disk bytes fill positions 0..n-1, for a
// big-endian file positions 4-n..3, with the remainder zero-extended. This
// is the placement that keeps the file-order interpretation of a 3-byte
// segment offset identical on either kind of host.
func (r *reader) readUintN(n int) (uint32, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return 0, err
	}
	if n == 4 {
		return r.order.Uint32(b), nil
	}

	var buf [4]byte
	if r.order == endian.GetLittleEndianEngine() {
		copy(buf[:n], b)
	} else {
		copy(buf[4-n:], b)
	}

	return r.order.Uint32(buf[:]), nil
}

func (r *reader) readFloat64() (float64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.order.Uint64(b)), nil
}

func (r *reader) readFloat64s(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := r.readFloat64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}
