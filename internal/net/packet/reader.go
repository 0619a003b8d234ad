package packet

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"golang.org/x/text/encoding/korean"
)

// ErrShortPacket is reported when a handler reads past the end of a packet.
var ErrShortPacket = errors.New("packet too short")

// Reader reads fields from one frame payload. Bytes 0-1 are always the
// little-endian header, so reading starts at offset 2.
//
// Reads past the end return zero values and latch ErrShortPacket, which the
// registry checks after the handler returns.
type Reader struct {
	data []byte
	off  int
	err  error
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data, off: 2}
}

func (r *Reader) Header() Header {
	if len(r.data) < 2 {
		return 0
	}
	return Header(binary.LittleEndian.Uint16(r.data))
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: header 0x%04X wants %d bytes at offset %d, have %d",
			ErrShortPacket, uint16(r.Header()), n, r.off, len(r.data))
		r.off = len(r.data)
		return false
	}
	return true
}

// ReadC reads 1 unsigned byte.
func (r *Reader) ReadC() byte {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadH reads 2 bytes as little-endian uint16.
func (r *Reader) ReadH() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// ReadD reads 4 bytes as little-endian int32.
func (r *Reader) ReadD() int32 {
	return int32(r.ReadDU())
}

// ReadDU reads 4 bytes as little-endian uint32.
func (r *Reader) ReadDU() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// ReadQ reads 8 bytes as little-endian int64.
func (r *Reader) ReadQ() int64 {
	if !r.need(8) {
		return 0
	}
	v := int64(binary.LittleEndian.Uint64(r.data[r.off:]))
	r.off += 8
	return v
}

// ReadS reads a null-terminated EUC-KR string and returns UTF-8. A missing
// terminator consumes the rest of the packet.
func (r *Reader) ReadS() string {
	if r.err != nil {
		return ""
	}
	start := r.off
	for r.off < len(r.data) {
		if r.data[r.off] == 0 {
			raw := r.data[start:r.off]
			r.off++
			return euckrToUTF8(raw)
		}
		r.off++
	}
	return euckrToUTF8(r.data[start:r.off])
}

// ReadFixedS reads an n-byte, zero-padded EUC-KR string.
func (r *Reader) ReadFixedS(n int) string {
	if !r.need(n) {
		return ""
	}
	raw := r.data[r.off : r.off+n]
	r.off += n
	for i, b := range raw {
		if b == 0 {
			raw = raw[:i]
			break
		}
	}
	return euckrToUTF8(raw)
}

// ReadRestS reads the remainder of the packet as a string.
func (r *Reader) ReadRestS() string {
	return r.ReadFixedS(r.Remaining())
}

// euckrToUTF8 converts EUC-KR bytes to a UTF-8 string.
// Pure ASCII passes through unchanged.
func euckrToUTF8(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(raw)
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) {
	if r.need(n) {
		r.off += n
	}
}

// ReadPosition reads a 3-byte packed position: 10 bits x, 10 bits y, 4 bits direction.
func (r *Reader) ReadPosition() gameplay.WorldPosition {
	if !r.need(3) {
		return gameplay.WorldPosition{}
	}
	b := r.data[r.off : r.off+3]
	r.off += 3
	return gameplay.WorldPosition{
		X:         uint16(b[0])<<2 | uint16(b[1]>>6),
		Y:         uint16(b[1]&0x3f)<<4 | uint16(b[2]>>4),
		Direction: gameplay.Direction(b[2] & 0x0f),
	}
}

// ReadPositionPair reads a 6-byte packed origin/destination pair.
func (r *Reader) ReadPositionPair() (origin, destination gameplay.WorldPosition) {
	if !r.need(6) {
		return
	}
	b := r.data[r.off : r.off+6]
	r.off += 6
	origin = gameplay.WorldPosition{
		X: uint16(b[0])<<2 | uint16(b[1]>>6),
		Y: uint16(b[1]&0x3f)<<4 | uint16(b[2]>>4),
	}
	destination = gameplay.WorldPosition{
		X: uint16(b[2]&0x0f)<<6 | uint16(b[3]>>2),
		Y: uint16(b[3]&0x03)<<8 | uint16(b[4]),
	}
	return origin, destination
}

// ReadTile reads a 2x uint16 tile position.
func (r *Reader) ReadTile() gameplay.TilePosition {
	x := r.ReadH()
	y := r.ReadH()
	return gameplay.TilePosition{X: x, Y: y}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
