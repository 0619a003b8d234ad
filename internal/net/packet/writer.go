package packet

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"golang.org/x/text/encoding/korean"
)

// Writer builds one outbound frame payload. All multi-byte writes are
// little-endian; the header occupies the first two bytes.
type Writer struct {
	buf []byte
}

func NewWriter(h Header) *Writer {
	w := &Writer{buf: make([]byte, 0, 32)}
	w.WriteH(uint16(h))
	return w
}

// WriteC writes 1 byte.
func (w *Writer) WriteC(v byte) {
	w.buf = append(w.buf, v)
}

// WriteH writes 2 bytes little-endian.
func (w *Writer) WriteH(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// WriteD writes 4 bytes little-endian (signed).
func (w *Writer) WriteD(v int32) {
	w.WriteDU(uint32(v))
}

// WriteDU writes 4 bytes little-endian unsigned.
func (w *Writer) WriteDU(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteQ writes 8 bytes little-endian.
func (w *Writer) WriteQ(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v))
}

// WriteS writes a null-terminated string, converting UTF-8 to EUC-KR.
func (w *Writer) WriteS(s string) {
	w.buf = append(w.buf, utf8ToEUCKR(s, -1)...)
	w.buf = append(w.buf, 0)
}

// WriteFixedS writes s into an n-byte zero-padded field. At most n-1 bytes
// of text are kept so the field always ends in NUL, and a double-byte
// character is never split.
func (w *Writer) WriteFixedS(s string, n int) {
	if n <= 0 {
		return
	}
	enc := utf8ToEUCKR(s, n-1)
	w.buf = append(w.buf, enc...)
	for i := len(enc); i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// utf8ToEUCKR encodes s one character at a time, writing '?' for
// characters EUC-KR has no code for. A non-negative limit stops before the
// first character that would not fit.
func utf8ToEUCKR(s string, limit int) []byte {
	if s == "" {
		return nil
	}
	enc := korean.EUCKR.NewEncoder()
	out := make([]byte, 0, len(s))
	var rb [utf8.UTFMax]byte
	for _, r := range s {
		ch := []byte{'?'}
		if r < utf8.RuneSelf {
			ch[0] = byte(r)
		} else if b, err := enc.Bytes(rb[:utf8.EncodeRune(rb[:], r)]); err == nil {
			ch = b
		}
		if limit >= 0 && len(out)+len(ch) > limit {
			break
		}
		out = append(out, ch...)
	}
	return out
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WritePosition writes a 3-byte packed position.
func (w *Writer) WritePosition(p gameplay.WorldPosition) {
	w.buf = append(w.buf,
		byte(p.X>>2),
		byte(p.X<<6)|byte(p.Y>>4)&0x3f,
		byte(p.Y<<4)|byte(p.Direction)&0x0f,
	)
}

// WritePositionPair writes a 6-byte packed origin/destination pair.
func (w *Writer) WritePositionPair(origin, destination gameplay.WorldPosition) {
	w.buf = append(w.buf,
		byte(origin.X>>2),
		byte(origin.X<<6)|byte(origin.Y>>4)&0x3f,
		byte(origin.Y<<4)|byte(destination.X>>6)&0x0f,
		byte(destination.X<<2)|byte(destination.Y>>8)&0x03,
		byte(destination.Y),
		0x88, // sub-cell offsets, always centered
	)
}

// WriteTile writes a 2x uint16 tile position.
func (w *Writer) WriteTile(p gameplay.TilePosition) {
	w.WriteH(p.X)
	w.WriteH(p.Y)
}

// Bytes returns the payload.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current payload length.
func (w *Writer) Len() int {
	return len(w.buf)
}
