package handler

import (
	"strings"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

func handleNpcDialog(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	npc := gameplay.EntityID(r.ReadDU())
	return one(gameplay.OpenDialog{Text: r.ReadS(), NpcID: npc})
}

func handleNextButton(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.AddNextButton{NpcID: gameplay.EntityID(r.ReadDU())})
}

func handleCloseButton(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.AddCloseButton{NpcID: gameplay.EntityID(r.ReadDU())})
}

func handleDialogMenu(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	npc := gameplay.EntityID(r.ReadDU())
	return one(gameplay.AddChoiceButtons{Choices: SplitChoices(r.ReadS()), NpcID: npc})
}

// SplitChoices splits a ':' separated menu and drops empty entries.
func SplitChoices(menu string) []string {
	choices := make([]string, 0, strings.Count(menu, ":")+1)
	for _, choice := range strings.Split(menu, ":") {
		if choice != "" {
			choices = append(choices, choice)
		}
	}
	return choices
}
