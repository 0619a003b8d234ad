package packet

import (
	"errors"
	"testing"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"go.uber.org/zap"
)

func TestPositionRoundTrip(t *testing.T) {
	want := gameplay.WorldPosition{X: 1023, Y: 517, Direction: 5}
	w := NewWriter(C_OPCODE_MOVE)
	w.WritePosition(want)

	r := NewReader(w.Bytes())
	if r.Header() != C_OPCODE_MOVE {
		t.Fatalf("header=%s", r.Header())
	}
	if got := r.ReadPosition(); got != want {
		t.Fatalf("position=%+v want %+v", got, want)
	}
	if r.Err() != nil || r.Remaining() != 0 {
		t.Fatalf("err=%v remaining=%d", r.Err(), r.Remaining())
	}
}

func TestPositionPairRoundTrip(t *testing.T) {
	origin := gameplay.WorldPosition{X: 150, Y: 99}
	destination := gameplay.WorldPosition{X: 1000, Y: 3}
	w := NewWriter(S_OPCODE_PLAYER_MOVE)
	w.WritePositionPair(origin, destination)

	r := NewReader(w.Bytes())
	o, d := r.ReadPositionPair()
	if o != origin || d != destination {
		t.Fatalf("origin=%+v destination=%+v", o, d)
	}
}

func TestStringsAndFixedFields(t *testing.T) {
	w := NewWriter(C_OPCODE_LOGIN)
	w.WriteFixedS("player", 24)
	w.WriteS("hello")
	w.WriteDU(0xDEADBEEF)

	r := NewReader(w.Bytes())
	if s := r.ReadFixedS(24); s != "player" {
		t.Fatalf("fixed=%q", s)
	}
	if s := r.ReadS(); s != "hello" {
		t.Fatalf("string=%q", s)
	}
	if v := r.ReadDU(); v != 0xDEADBEEF {
		t.Fatalf("dword=%x", v)
	}
}

func TestKoreanStringRoundTrip(t *testing.T) {
	w := NewWriter(C_OPCODE_GLOBAL_MESSAGE)
	w.WriteS("안녕")
	r := NewReader(w.Bytes())
	if s := r.ReadS(); s != "안녕" {
		t.Fatalf("string=%q", s)
	}
}

func TestFixedStringKeepsTerminator(t *testing.T) {
	w := NewWriter(C_OPCODE_LOGIN)
	w.WriteFixedS("abcdefgh", 8)
	w.WriteFixedS("안녕", 4)
	w.WriteFixedS("x", 0)
	w.WriteC(0x7F)

	field := w.Bytes()[2:]
	if len(field) != 13 {
		t.Fatalf("payload length = %d, want 13", len(field))
	}
	if got := string(field[:8]); got != "abcdefg\x00" {
		t.Fatalf("ascii field = %q", got)
	}
	// "안" is two bytes; "녕" does not fit in front of the terminator.
	if field[8] < 0x80 || field[10] != 0 || field[11] != 0 {
		t.Fatalf("korean field = % x", field[8:12])
	}
	r := NewReader(w.Bytes())
	if s := r.ReadFixedS(8); s != "abcdefg" {
		t.Fatalf("fixed=%q", s)
	}
	if s := r.ReadFixedS(4); s != "안" {
		t.Fatalf("fixed korean=%q", s)
	}
	if v := r.ReadC(); v != 0x7F {
		t.Fatalf("trailing byte=%x", v)
	}
}

func TestUnencodableCharacterReplaced(t *testing.T) {
	w := NewWriter(C_OPCODE_GLOBAL_MESSAGE)
	w.WriteS("a\U0001F600안b")
	r := NewReader(w.Bytes())
	if s := r.ReadS(); s != "a?안b" {
		t.Fatalf("string=%q", s)
	}
	for _, b := range w.Bytes()[2:] {
		if b == 0xF0 {
			t.Fatalf("raw UTF-8 leaked into payload: % x", w.Bytes())
		}
	}
}

func TestReaderLatchesShortPacket(t *testing.T) {
	r := NewReader([]byte{0x81, 0x00, 0x01})
	r.ReadC()
	if v := r.ReadDU(); v != 0 {
		t.Fatalf("short read returned %d", v)
	}
	if !errors.Is(r.Err(), ErrShortPacket) {
		t.Fatalf("err=%v", r.Err())
	}
	// Later reads keep failing without panicking.
	if s := r.ReadFixedS(4); s != "" {
		t.Fatalf("string after error=%q", s)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if err := reg.RegisterNoop(S_OPCODE_MAP_TYPE); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := reg.Register(S_OPCODE_MAP_TYPE, noop)
	var dup *DuplicateHandlerError
	if !errors.As(err, &dup) || dup.Header != S_OPCODE_MAP_TYPE {
		t.Fatalf("err=%v", err)
	}
}

func TestRegistryUnknownAndNoop(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if err := reg.RegisterNoop(S_OPCODE_MAP_TYPE); err != nil {
		t.Fatal(err)
	}
	var st Reassembly

	events, err := reg.Dispatch(&st, []byte{0x34, 0x12, 0xFF, 0xFF})
	if err != nil || events.Len() != 0 {
		t.Fatalf("unknown: events=%d err=%v", events.Len(), err)
	}
	events, err = reg.Dispatch(&st, NewWriter(S_OPCODE_MAP_TYPE).Bytes())
	if err != nil || events.Len() != 0 {
		t.Fatalf("noop: events=%d err=%v", events.Len(), err)
	}
	if _, err := reg.Dispatch(&st, []byte{0x01}); !errors.Is(err, ErrShortPacket) {
		t.Fatalf("headerless frame err=%v", err)
	}
}

func TestRegistryRecoversPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	err := reg.Register(S_OPCODE_SERVER_TICK, func(*Reassembly, *Reader) (gameplay.Events, error) {
		panic("boom")
	})
	if err != nil {
		t.Fatal(err)
	}
	events, err := reg.Dispatch(&Reassembly{}, NewWriter(S_OPCODE_SERVER_TICK).Bytes())
	if err == nil || events.Len() != 0 {
		t.Fatalf("events=%d err=%v", events.Len(), err)
	}
}

func TestRegistryReportsShortRead(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	err := reg.Register(S_OPCODE_SERVER_TICK, func(_ *Reassembly, r *Reader) (gameplay.Events, error) {
		return gameplay.OneEvent(gameplay.UpdateClientTick{ClientTick: gameplay.ClientTick(r.ReadDU())}), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	events, err := reg.Dispatch(&Reassembly{}, NewWriter(S_OPCODE_SERVER_TICK).Bytes())
	if !errors.Is(err, ErrShortPacket) || events.Len() != 0 {
		t.Fatalf("events=%d err=%v", events.Len(), err)
	}
}

func item(index gameplay.InventoryIndex) gameplay.InventoryItem {
	return gameplay.InventoryItem{Index: index, Details: gameplay.RegularItemDetails{Amount: 1}}
}

func TestReassemblyConcatenates(t *testing.T) {
	var st Reassembly
	if err := st.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := st.Append([]gameplay.InventoryItem{item(2), item(3)}); err != nil {
		t.Fatal(err)
	}
	if err := st.Append([]gameplay.InventoryItem{item(4)}); err != nil {
		t.Fatal(err)
	}
	items, err := st.End()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 || items[0].Index != 2 || items[2].Index != 4 {
		t.Fatalf("items=%+v", items)
	}
	if st.Active() {
		t.Fatal("still active after End")
	}
}

func TestReassemblyDesync(t *testing.T) {
	var st Reassembly
	if err := st.Append([]gameplay.InventoryItem{item(2)}); !errors.Is(err, ErrInventoryDesync) {
		t.Fatalf("append without begin err=%v", err)
	}
	if _, err := st.End(); !errors.Is(err, ErrInventoryDesync) {
		t.Fatalf("end without begin err=%v", err)
	}

	_ = st.Begin()
	_ = st.Append([]gameplay.InventoryItem{item(2)})
	if err := st.Begin(); !errors.Is(err, ErrInventoryDesync) {
		t.Fatalf("second begin err=%v", err)
	}
	items, err := st.End()
	if err != nil || len(items) != 0 {
		t.Fatalf("partial list leaked: items=%d err=%v", len(items), err)
	}
}

func TestKnownLoginRefusedReasonsPerEpoch(t *testing.T) {
	for _, r := range KnownLoginRefusedReasons(gameplay.Version20120307) {
		if r > 0xFF {
			t.Fatalf("reason %d does not fit the one-byte refusal packet", r)
		}
	}
	old := len(KnownLoginRefusedReasons(gameplay.Version20120307))
	cur := len(KnownLoginRefusedReasons(gameplay.Version20220406))
	if cur != old+1 {
		t.Fatalf("old=%d current=%d", old, cur)
	}
}
