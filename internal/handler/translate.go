package handler

import (
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// TranslateLoginFailed maps an S_OPCODE_LOGIN_FAILED code.
func TranslateLoginFailed(r packet.LoginFailedReason) (gameplay.UnifiedLoginFailedReason, string, error) {
	var u gameplay.UnifiedLoginFailedReason
	switch r {
	case packet.LoginFailedServerClosed:
		u = gameplay.LoginServerClosed
	case packet.LoginFailedAlreadyLoggedIn:
		u = gameplay.LoginAlreadyLoggedIn
	case packet.LoginFailedAlreadyOnline:
		u = gameplay.LoginAlreadyOnline
	default:
		return 0, "", fmt.Errorf("%w: login failed reason %d", packet.ErrUnknownReason, r)
	}
	return u, u.Message(), nil
}

// TranslateLoginRefused maps the refusal code of either epoch.
func TranslateLoginRefused(r packet.LoginRefusedReason) (gameplay.UnifiedLoginFailedReason, string, error) {
	var u gameplay.UnifiedLoginFailedReason
	switch r {
	case packet.LoginRefusedUnregisteredID:
		u = gameplay.LoginUnregisteredID
	case packet.LoginRefusedIncorrectPassword:
		u = gameplay.LoginIncorrectPassword
	case packet.LoginRefusedIDExpired:
		u = gameplay.LoginIDExpired
	case packet.LoginRefusedRejectedFromServer:
		u = gameplay.LoginRejectedFromServer
	case packet.LoginRefusedBlockedByGMTeam:
		u = gameplay.LoginBlockedByGMTeam
	case packet.LoginRefusedGameOutdated:
		u = gameplay.LoginGameOutdated
	case packet.LoginRefusedProhibitedUntil:
		u = gameplay.LoginProhibitedUntil
	case packet.LoginRefusedServerFull:
		u = gameplay.LoginServerFull
	case packet.LoginRefusedCompanyAccountLimitReached:
		u = gameplay.LoginCompanyAccountLimitReached
	default:
		return 0, "", fmt.Errorf("%w: login refused reason %d", packet.ErrUnknownReason, r)
	}
	return u, u.Message(), nil
}

func TranslateCharacterSelectionFailed(r packet.CharacterSelectionFailedReason) (gameplay.UnifiedCharacterSelectionFailedReason, string, error) {
	switch r {
	case packet.SelectionFailedRejectedFromServer:
		u := gameplay.SelectionRejectedFromServer
		return u, u.Message(), nil
	default:
		return 0, "", fmt.Errorf("%w: character selection failed reason %d", packet.ErrUnknownReason, r)
	}
}

func TranslateCharacterCreationFailed(r packet.CharacterCreationFailedReason) (gameplay.UnifiedCharacterCreationFailedReason, string, error) {
	var u gameplay.UnifiedCharacterCreationFailedReason
	switch r {
	case packet.CreationFailedNameAlreadyUsed:
		u = gameplay.CreationNameAlreadyUsed
	case packet.CreationFailedNotOldEnough:
		u = gameplay.CreationNotOldEnough
	case packet.CreationFailedNotAllowedToUseSlot:
		u = gameplay.CreationNotAllowedToUseSlot
	case packet.CreationFailedGeneric:
		u = gameplay.CreationFailed
	default:
		return 0, "", fmt.Errorf("%w: character creation failed reason %d", packet.ErrUnknownReason, r)
	}
	return u, u.Message(), nil
}

func TranslateCharacterDeletionFailed(r packet.CharacterDeletionFailedReason) (gameplay.UnifiedCharacterDeletionFailedReason, string, error) {
	var u gameplay.UnifiedCharacterDeletionFailedReason
	switch r {
	case packet.DeletionFailedNotAllowed:
		u = gameplay.DeletionNotAllowed
	case packet.DeletionFailedCharacterNotFound:
		u = gameplay.DeletionCharacterNotFound
	case packet.DeletionFailedNotEligible:
		u = gameplay.DeletionNotEligible
	default:
		return 0, "", fmt.Errorf("%w: character deletion failed reason %d", packet.ErrUnknownReason, r)
	}
	return u, u.Message(), nil
}
