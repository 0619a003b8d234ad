package gameplay

import "fmt"

// UnifiedLoginFailedReason collapses every login refusal the login and
// character servers can send, across all protocol versions.
type UnifiedLoginFailedReason uint8

const (
	LoginServerClosed UnifiedLoginFailedReason = iota
	LoginAlreadyLoggedIn
	LoginAlreadyOnline
	LoginUnregisteredID
	LoginIncorrectPassword
	LoginIDExpired
	LoginRejectedFromServer
	LoginBlockedByGMTeam
	LoginGameOutdated
	LoginProhibitedUntil
	LoginServerFull
	LoginCompanyAccountLimitReached
)

var loginFailedNames = [...]string{
	LoginServerClosed:               "ServerClosed",
	LoginAlreadyLoggedIn:            "AlreadyLoggedIn",
	LoginAlreadyOnline:              "AlreadyOnline",
	LoginUnregisteredID:             "UnregisteredId",
	LoginIncorrectPassword:          "IncorrectPassword",
	LoginIDExpired:                  "IdExpired",
	LoginRejectedFromServer:         "RejectedFromServer",
	LoginBlockedByGMTeam:            "BlockedByGMTeam",
	LoginGameOutdated:               "GameOutdated",
	LoginProhibitedUntil:            "LoginProhibitedUntil",
	LoginServerFull:                 "ServerFull",
	LoginCompanyAccountLimitReached: "CompanyAccountLimitReached",
}

var loginFailedMessages = [...]string{
	LoginServerClosed:               "Server closed",
	LoginAlreadyLoggedIn:            "Someone has already logged in with this id",
	LoginAlreadyOnline:              "Already online",
	LoginUnregisteredID:             "Unregistered id",
	LoginIncorrectPassword:          "Incorrect password",
	LoginIDExpired:                  "Id has expired",
	LoginRejectedFromServer:         "Rejected from server",
	LoginBlockedByGMTeam:            "Blocked by gm team",
	LoginGameOutdated:               "Game outdated",
	LoginProhibitedUntil:            "Login prohibited until",
	LoginServerFull:                 "Server is full",
	LoginCompanyAccountLimitReached: "Company account limit reached",
}

func (r UnifiedLoginFailedReason) String() string {
	if int(r) < len(loginFailedNames) {
		return loginFailedNames[r]
	}
	return fmt.Sprintf("UnifiedLoginFailedReason(%d)", uint8(r))
}

// Message is the text shown to the player.
func (r UnifiedLoginFailedReason) Message() string {
	if int(r) < len(loginFailedMessages) {
		return loginFailedMessages[r]
	}
	return ""
}

// UnifiedCharacterSelectionFailedReason collapses the refusals of a
// character selection request.
type UnifiedCharacterSelectionFailedReason uint8

const (
	SelectionRejectedFromServer UnifiedCharacterSelectionFailedReason = iota
	SelectionMapServerUnavailable
)

func (r UnifiedCharacterSelectionFailedReason) String() string {
	switch r {
	case SelectionRejectedFromServer:
		return "RejectedFromServer"
	case SelectionMapServerUnavailable:
		return "MapServerUnavailable"
	default:
		return fmt.Sprintf("UnifiedCharacterSelectionFailedReason(%d)", uint8(r))
	}
}

func (r UnifiedCharacterSelectionFailedReason) Message() string {
	switch r {
	case SelectionRejectedFromServer:
		return "Rejected from server"
	case SelectionMapServerUnavailable:
		return "Map server currently unavailable"
	default:
		return ""
	}
}

type UnifiedCharacterCreationFailedReason uint8

const (
	CreationNameAlreadyUsed UnifiedCharacterCreationFailedReason = iota
	CreationNotOldEnough
	CreationNotAllowedToUseSlot
	CreationFailed
)

func (r UnifiedCharacterCreationFailedReason) String() string {
	switch r {
	case CreationNameAlreadyUsed:
		return "CharacterNameAlreadyUsed"
	case CreationNotOldEnough:
		return "NotOldEnough"
	case CreationNotAllowedToUseSlot:
		return "NotAllowedToUseSlot"
	case CreationFailed:
		return "CharacterCreationFailed"
	default:
		return fmt.Sprintf("UnifiedCharacterCreationFailedReason(%d)", uint8(r))
	}
}

func (r UnifiedCharacterCreationFailedReason) Message() string {
	switch r {
	case CreationNameAlreadyUsed:
		return "Character name is already used"
	case CreationNotOldEnough:
		return "You are not old enough to create a character"
	case CreationNotAllowedToUseSlot:
		return "You are not allowed to use this character slot"
	case CreationFailed:
		return "Character creation failed"
	default:
		return ""
	}
}

type UnifiedCharacterDeletionFailedReason uint8

const (
	DeletionNotAllowed UnifiedCharacterDeletionFailedReason = iota
	DeletionCharacterNotFound
	DeletionNotEligible
)

func (r UnifiedCharacterDeletionFailedReason) String() string {
	switch r {
	case DeletionNotAllowed:
		return "NotAllowed"
	case DeletionCharacterNotFound:
		return "CharacterNotFound"
	case DeletionNotEligible:
		return "NotEligible"
	default:
		return fmt.Sprintf("UnifiedCharacterDeletionFailedReason(%d)", uint8(r))
	}
}

func (r UnifiedCharacterDeletionFailedReason) Message() string {
	switch r {
	case DeletionNotAllowed:
		return "You are not allowed to delete this character"
	case DeletionCharacterNotFound:
		return "Character was not found"
	case DeletionNotEligible:
		return "Character is not eligible for deletion"
	default:
		return ""
	}
}

// DisconnectReason classifies the terminal event of a phase.
type DisconnectReason uint8

const (
	// ClosedByClient is reported after an explicit disconnect.
	ClosedByClient DisconnectReason = iota
	// FailedToConnect is reported when the handshake never completed.
	FailedToConnect
	// ConnectionClosed is reported when an established connection broke.
	ConnectionClosed
)

func (r DisconnectReason) String() string {
	switch r {
	case ClosedByClient:
		return "ClosedByClient"
	case FailedToConnect:
		return "FailedToConnect"
	case ConnectionClosed:
		return "ConnectionClosed"
	default:
		return fmt.Sprintf("DisconnectReason(%d)", uint8(r))
	}
}
