package handler

import (
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

const FriendEntrySize = 4 + 4 + 24

// Friend request result codes.
const (
	friendAccepted = iota
	friendRejected
	friendOwnListFull
	friendOtherListFull
)

func readFriend(r *packet.Reader) gameplay.Friend {
	return gameplay.Friend{
		AccountID:   gameplay.AccountID(r.ReadDU()),
		CharacterID: gameplay.CharacterID(r.ReadDU()),
		Name:        r.ReadFixedS(24),
	}
}

func handleFriendList(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	friends := make([]gameplay.Friend, 0, r.Remaining()/FriendEntrySize)
	for r.Remaining() >= FriendEntrySize {
		friends = append(friends, readFriend(r))
	}
	return one(gameplay.SetFriendList{Friends: friends})
}

func handleFriendRequest(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.FriendRequest{Requestee: readFriend(r)})
}

// handleFriendRequestResult reports the outcome as a chat line and adds the
// friend when the request was accepted.
func handleFriendRequestResult(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	result := r.ReadH()
	friend := readFriend(r)

	var text string
	switch result {
	case friendAccepted:
		text = fmt.Sprintf("You have become friends with %s.", friend.Name)
	case friendRejected:
		text = fmt.Sprintf("%s does not want to be friends with you.", friend.Name)
	case friendOwnListFull:
		text = "Your Friend List is full."
	case friendOtherListFull:
		text = fmt.Sprintf("%s's Friend List is full.", friend.Name)
	default:
		return gameplay.NoEvents(), fmt.Errorf("%w: friend request result %d", packet.ErrUnknownReason, result)
	}

	message := gameplay.ChatMessage{
		Text:  text,
		Color: gameplay.MessageColor{Kind: gameplay.MessageColorInformation},
	}
	if result == friendAccepted {
		return gameplay.ManyEvents(message, gameplay.FriendAdded{Friend: friend}), nil
	}
	return one(message)
}

func handleFriendRemoved(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.FriendRemoved{
		AccountID:   gameplay.AccountID(r.ReadDU()),
		CharacterID: gameplay.CharacterID(r.ReadDU()),
	})
}
