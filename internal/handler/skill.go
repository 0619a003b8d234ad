package handler

import (
	"fmt"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

const (
	SkillInformationSize = 37
	HotkeyEntrySize      = 7
	HotkeysPerTab        = 38
)

// visualEffectPaths is indexed by the wire effect id.
var visualEffectPaths = [...]string{
	"angel.str",                            // base level up
	"joblvup.str",                          // job level up
	"bs_refinefailed.str",                  // refine failure
	"bs_refinesuccess.str",                 // refine success
	`help_angel\help_angel\help_angel.str`, // game over
	"p_success.str",                        // pharmacy success
	"p_failed.str",                         // pharmacy failure
	`help_angel\help_angel\help_angel.str`, // base level up, super novice
	`help_angel\help_angel\help_angel.str`, // job level up, super novice
	`help_angel\help_angel\help_angel.str`, // base level up, taekwon
}

func handleSkillTree(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	skills := make([]gameplay.SkillInformation, 0, r.Remaining()/SkillInformationSize)
	for r.Remaining() >= SkillInformationSize {
		skills = append(skills, gameplay.SkillInformation{
			SkillID:     gameplay.SkillID(r.ReadH()),
			SkillType:   r.ReadDU(),
			SkillLevel:  gameplay.SkillLevel(r.ReadH()),
			SpellPoints: r.ReadH(),
			AttackRange: r.ReadH(),
			Name:        r.ReadFixedS(24),
			Upgradable:  r.ReadC() != 0,
		})
	}
	return one(gameplay.SkillTree{Skills: skills})
}

// handleHotkeys maps all-zero entries to unbound slots.
func handleHotkeys(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadC() // rotate
	tab := gameplay.HotbarTab(r.ReadH())
	hotkeys := make([]gameplay.HotkeyState, 0, HotkeysPerTab)
	for r.Remaining() >= HotkeyEntrySize {
		data := gameplay.HotkeyData{
			IsSkill:  r.ReadC() != 0,
			SkillID:  r.ReadDU(),
			Quantity: r.ReadH(),
		}
		if data == (gameplay.HotkeyData{}) {
			hotkeys = append(hotkeys, gameplay.HotkeyState{})
			continue
		}
		hotkeys = append(hotkeys, gameplay.HotkeyState{Bound: true, Data: data})
	}
	return one(gameplay.SetHotkeyData{Tab: tab, Hotkeys: hotkeys})
}

func handleHealEffect(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadH() // skill id
	amount := r.ReadDU()
	target := gameplay.EntityID(r.ReadDU())
	r.ReadDU() // source entity
	r.ReadC()  // result
	return one(gameplay.HealEffect{EntityID: target, HealAmount: int(amount)})
}

func handleVisualEffect(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	effect := r.ReadDU()
	if int(effect) >= len(visualEffectPaths) {
		return gameplay.NoEvents(), fmt.Errorf("%w: visual effect %d", packet.ErrUnknownReason, effect)
	}
	return one(gameplay.VisualEffect{EffectPath: visualEffectPaths[effect], EntityID: id})
}

func handleQuestEffect(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	position := r.ReadTile()
	effect := gameplay.QuestEffect(r.ReadH())
	color := r.ReadH()
	if effect == gameplay.QuestEffectNone {
		return one(gameplay.RemoveQuestEffect{EntityID: id})
	}
	return one(gameplay.AddQuestEffect{EntityID: id, Position: position, Effect: effect, Color: color})
}

func handleNotifySkillUnit(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	r.ReadDU() // creator
	position := r.ReadTile()
	unit := gameplay.UnitID(r.ReadDU())
	r.Skip(3) // range, visible, level
	return one(gameplay.AddSkillUnit{EntityID: id, UnitID: unit, Position: position})
}

func handleSkillUnitDisappear(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.RemoveSkillUnit{EntityID: gameplay.EntityID(r.ReadDU())})
}
