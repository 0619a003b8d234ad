package packet

import (
	"errors"

	"github.com/hasenbanck/korangar/internal/gameplay"
)

// ErrUnknownReason is returned when a server sends a reason code outside the
// known set of its protocol epoch.
var ErrUnknownReason = errors.New("unknown wire reason")

// LoginFailedReason is carried by S_OPCODE_LOGIN_FAILED.
type LoginFailedReason uint8

const (
	LoginFailedServerClosed    LoginFailedReason = 1
	LoginFailedAlreadyLoggedIn LoginFailedReason = 2
	LoginFailedAlreadyOnline   LoginFailedReason = 8
)

// LoginRefusedReason is carried by S_OPCODE_LOGIN_REFUSED (one byte) and
// S_OPCODE_LOGIN_REFUSED2 (four bytes). The code points are shared.
type LoginRefusedReason uint32

const (
	LoginRefusedUnregisteredID             LoginRefusedReason = 0
	LoginRefusedIncorrectPassword          LoginRefusedReason = 1
	LoginRefusedIDExpired                  LoginRefusedReason = 2
	LoginRefusedRejectedFromServer         LoginRefusedReason = 3
	LoginRefusedBlockedByGMTeam            LoginRefusedReason = 4
	LoginRefusedGameOutdated               LoginRefusedReason = 5
	LoginRefusedProhibitedUntil            LoginRefusedReason = 6
	LoginRefusedServerFull                 LoginRefusedReason = 7
	LoginRefusedCompanyAccountLimitReached LoginRefusedReason = 8
)

type CharacterSelectionFailedReason uint8

const SelectionFailedRejectedFromServer CharacterSelectionFailedReason = 0

type CharacterCreationFailedReason uint8

const (
	CreationFailedNameAlreadyUsed     CharacterCreationFailedReason = 0x00
	CreationFailedNotOldEnough        CharacterCreationFailedReason = 0x01
	CreationFailedNotAllowedToUseSlot CharacterCreationFailedReason = 0x03
	CreationFailedGeneric             CharacterCreationFailedReason = 0xFF
)

type CharacterDeletionFailedReason uint32

const (
	DeletionFailedNotAllowed        CharacterDeletionFailedReason = 0
	DeletionFailedCharacterNotFound CharacterDeletionFailedReason = 1
	DeletionFailedNotEligible       CharacterDeletionFailedReason = 2
)

// KnownLoginFailedReasons lists every S_OPCODE_LOGIN_FAILED code.
func KnownLoginFailedReasons(gameplay.PacketVersion) []LoginFailedReason {
	return []LoginFailedReason{
		LoginFailedServerClosed,
		LoginFailedAlreadyLoggedIn,
		LoginFailedAlreadyOnline,
	}
}

// KnownLoginRefusedReasons lists the refusal codes a login server of the
// given epoch can send.
func KnownLoginRefusedReasons(v gameplay.PacketVersion) []LoginRefusedReason {
	known := []LoginRefusedReason{
		LoginRefusedUnregisteredID,
		LoginRefusedIncorrectPassword,
		LoginRefusedIDExpired,
		LoginRefusedRejectedFromServer,
		LoginRefusedBlockedByGMTeam,
		LoginRefusedGameOutdated,
		LoginRefusedProhibitedUntil,
		LoginRefusedServerFull,
	}
	if v >= gameplay.Version20220406 {
		known = append(known, LoginRefusedCompanyAccountLimitReached)
	}
	return known
}

func KnownCharacterSelectionFailedReasons(gameplay.PacketVersion) []CharacterSelectionFailedReason {
	return []CharacterSelectionFailedReason{SelectionFailedRejectedFromServer}
}

func KnownCharacterCreationFailedReasons(gameplay.PacketVersion) []CharacterCreationFailedReason {
	return []CharacterCreationFailedReason{
		CreationFailedNameAlreadyUsed,
		CreationFailedNotOldEnough,
		CreationFailedNotAllowedToUseSlot,
		CreationFailedGeneric,
	}
}

func KnownCharacterDeletionFailedReasons(gameplay.PacketVersion) []CharacterDeletionFailedReason {
	return []CharacterDeletionFailedReason{
		DeletionFailedNotAllowed,
		DeletionFailedCharacterNotFound,
		DeletionFailedNotEligible,
	}
}
