package handler

import (
	"net/netip"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Wire sizes of the login success packet.
const (
	LoginSuccessFixedSize     = 4 + 4 + 4 + 4 + 26 + 1 + 17
	CharacterServerEntrySize  = 4 + 2 + 20 + 2 + 2 + 2 + 128
	characterServerNameLength = 20
)

// handleLoginSuccess processes S_LOGIN_SUCCESS: session tokens followed by
// the list of character servers.
func handleLoginSuccess(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	login := gameplay.LoginServerLoginData{
		AccountID: gameplay.AccountID(r.ReadDU()),
		LoginID1:  r.ReadDU(),
		LoginID2:  r.ReadDU(),
	}
	r.Skip(4)  // last login ip
	r.Skip(26) // last login time
	login.Sex = gameplay.Sex(r.ReadC())
	r.Skip(17) // web auth token

	servers := make([]gameplay.CharacterServerInformation, 0, r.Remaining()/CharacterServerEntrySize)
	for r.Remaining() >= CharacterServerEntrySize {
		servers = append(servers, readCharacterServer(r))
	}

	return one(gameplay.LoginServerConnected{
		CharacterServers: servers,
		LoginData:        login,
	})
}

func readCharacterServer(r *packet.Reader) gameplay.CharacterServerInformation {
	var ip [4]byte
	copy(ip[:], r.ReadBytes(4))
	info := gameplay.CharacterServerInformation{
		ServerIP:   netip.AddrFrom4(ip),
		ServerPort: r.ReadH(),
		Name:       r.ReadFixedS(characterServerNameLength),
		UserCount:  r.ReadH(),
		ServerType: r.ReadH(),
		DisplayNew: r.ReadH(),
	}
	r.Skip(128)
	return info
}

func handleLoginFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	reason, message, err := TranslateLoginFailed(packet.LoginFailedReason(r.ReadC()))
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.LoginServerConnectionFailed{Reason: reason, Message: message})
}

// handleLoginRefused processes the four-byte refusal of the 2022 epoch.
func handleLoginRefused(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return loginRefused(packet.LoginRefusedReason(r.ReadDU()), r)
}

// handleLoginRefusedByte processes the one-byte refusal of the 2012 epoch.
func handleLoginRefusedByte(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return loginRefused(packet.LoginRefusedReason(r.ReadC()), r)
}

func loginRefused(code packet.LoginRefusedReason, r *packet.Reader) (gameplay.Events, error) {
	r.ReadFixedS(20) // block date
	reason, message, err := TranslateLoginRefused(code)
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.LoginServerConnectionFailed{Reason: reason, Message: message})
}
