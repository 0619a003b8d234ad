package handler

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

func chat(text string, kind gameplay.MessageColorKind) (gameplay.Events, error) {
	return one(gameplay.ChatMessage{Text: text, Color: gameplay.MessageColor{Kind: kind}})
}

func handleBroadcast(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return chat(r.ReadS(), gameplay.MessageColorBroadcast)
}

// readColor reads an RGBA quad and drops the alpha channel, which servers
// frequently leave at zero.
func readColor(r *packet.Reader) gameplay.MessageColor {
	red, green, blue := r.ReadC(), r.ReadC(), r.ReadC()
	r.ReadC()
	return gameplay.RGBColor(red, green, blue)
}

func handleBroadcast2(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	color := readColor(r)
	r.Skip(8) // font type, font size, alignment, y offset
	return one(gameplay.ChatMessage{Text: r.ReadS(), Color: color})
}

// handleOverheadMessage shows text meant for above an entity's head as a
// broadcast line. There is no dedicated event for overhead text yet.
func handleOverheadMessage(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadDU() // entity id
	return chat(r.ReadS(), gameplay.MessageColorBroadcast)
}

func handleServerMessage(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return chat(r.ReadS(), gameplay.MessageColorServer)
}

func handleEntityMessage(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadDU() // entity id
	color := readColor(r)
	return one(gameplay.ChatMessage{Text: r.ReadS(), Color: color})
}
