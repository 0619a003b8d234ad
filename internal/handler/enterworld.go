package handler

import (
	"time"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Restart and disconnect response codes.
const (
	restartNothing = 0
	restartOk      = 1

	disconnectOk            = 0
	disconnectWait10Seconds = 1
)

// now is replaced in tests.
var now = time.Now

func handleMapServerLoginSuccess(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	tick := gameplay.ClientTick(r.ReadDU())
	r.ReadPosition()
	r.Skip(2) // map size hints
	r.ReadH() // font
	return one(gameplay.UpdateClientTick{ClientTick: tick, ReceivedAt: now()})
}

// handleMapServerLoginAck is the 2012 epoch form without the font field.
func handleMapServerLoginAck(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	tick := gameplay.ClientTick(r.ReadDU())
	r.ReadPosition()
	r.Skip(2)
	return one(gameplay.UpdateClientTick{ClientTick: tick, ReceivedAt: now()})
}

func handleAccountID(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.AccountIDReceived{AccountID: gameplay.AccountID(r.ReadDU())})
}

func handleServerTick(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.UpdateClientTick{ClientTick: gameplay.ClientTick(r.ReadDU()), ReceivedAt: now()})
}

func handleRestartResponse(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	switch r.ReadC() {
	case restartOk:
		return one(gameplay.LoggedOut{})
	case restartNothing:
		return one(gameplay.ChatMessage{
			Text:  "Failed to log out.",
			Color: gameplay.MessageColor{Kind: gameplay.MessageColorError},
		})
	default:
		return gameplay.NoEvents(), packet.ErrUnknownReason
	}
}

func handleDisconnectResponse(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	switch r.ReadH() {
	case disconnectOk:
		return one(gameplay.LoggedOut{})
	case disconnectWait10Seconds:
		return one(gameplay.ChatMessage{
			Text:  "Please wait 10 seconds before trying to log out.",
			Color: gameplay.MessageColor{Kind: gameplay.MessageColorError},
		})
	default:
		return gameplay.NoEvents(), packet.ErrUnknownReason
	}
}
