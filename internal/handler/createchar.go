package handler

import (
	"net/netip"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Slot switch status codes.
const (
	switchSlotSuccess = 0
	switchSlotError   = 1
)

func handleSelectSuccess(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.CharacterID(r.ReadDU())
	r.ReadFixedS(16) // map name, resent by the map server
	var ip [4]byte
	copy(ip[:], r.ReadBytes(4))
	port := r.ReadH()

	return one(gameplay.CharacterSelected{LoginData: gameplay.CharacterServerLoginData{
		ServerIP:    netip.AddrFrom4(ip),
		ServerPort:  port,
		CharacterID: id,
	}})
}

func handleSelectFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	reason, message, err := TranslateCharacterSelectionFailed(packet.CharacterSelectionFailedReason(r.ReadC()))
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.CharacterSelectionFailed{Reason: reason, Message: message})
}

func handleMapServerUnavailable(*packet.Reassembly, *packet.Reader) (gameplay.Events, error) {
	reason := gameplay.SelectionMapServerUnavailable
	return one(gameplay.CharacterSelectionFailed{Reason: reason, Message: reason.Message()})
}

func handleCreateSuccess(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.CharacterCreated{Character: readCharacterInformation(r)})
}

func handleCreateFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	reason, message, err := TranslateCharacterCreationFailed(packet.CharacterCreationFailedReason(r.ReadC()))
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.CharacterCreationFailed{Reason: reason, Message: message})
}

func handleDeleteSuccess(*packet.Reassembly, *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.CharacterDeleted{})
}

func handleDeleteFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	reason, message, err := TranslateCharacterDeletionFailed(packet.CharacterDeletionFailedReason(r.ReadDU()))
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.CharacterDeletionFailed{Reason: reason, Message: message})
}

func handleSwitchSlotResponse(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadH() // unknown
	status := r.ReadH()
	r.ReadH() // remaining moves
	switch status {
	case switchSlotSuccess:
		return one(gameplay.CharacterSlotSwitched{})
	case switchSlotError:
		return one(gameplay.CharacterSlotSwitchFailed{})
	default:
		return gameplay.NoEvents(), packet.ErrUnknownReason
	}
}
