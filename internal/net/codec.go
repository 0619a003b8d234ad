package net

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize is the largest frame the two-byte length prefix can describe.
const MaxFrameSize = 0xFFFF

// ReadFrame reads one frame from r.
// Wire format: [2 bytes LE: total length including the prefix][payload].
// The payload starts with the two-byte packet header, so it is never shorter
// than 2 bytes. Unknown packets are skipped by length alone.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("read frame length: %w", err)
	}

	totalLen := int(binary.LittleEndian.Uint16(prefix[:]))
	payloadLen := totalLen - 2
	if payloadLen < 2 {
		return nil, fmt.Errorf("invalid frame length: %d", totalLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read frame payload (%d bytes): %w", payloadLen, err)
	}
	return payload, nil
}

// WriteFrame writes one frame to w with a single Write call, so message
// oriented transports carry exactly one frame per message.
func WriteFrame(w io.Writer, payload []byte) error {
	totalLen := len(payload) + 2
	if totalLen > MaxFrameSize {
		return fmt.Errorf("frame too large: %d bytes", totalLen)
	}
	buf := make([]byte, 2, totalLen)
	binary.LittleEndian.PutUint16(buf, uint16(totalLen))
	buf = append(buf, payload...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
