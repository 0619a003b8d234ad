package handler

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Sprite change kinds that produce an event; the rest (weapon, shield,
// headgear, palettes) are ignored.
const (
	spriteBase = 0
	spriteHair = 1
)

func handleUpdateStat(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	kind := r.ReadH()
	return one(gameplay.UpdateStat{Stat: gameplay.StatUpdate{Kind: kind, Value: int64(r.ReadD())}})
}

func handleUpdateStat1(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	kind := r.ReadH()
	return one(gameplay.UpdateStat{Stat: gameplay.StatUpdate{Kind: kind, Value: int64(r.ReadDU())}})
}

func handleUpdateStat2(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	kind := r.ReadH()
	return one(gameplay.UpdateStat{Stat: gameplay.StatUpdate{Kind: kind, Value: int64(r.ReadC())}})
}

func handleUpdateStat3(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	kind := uint16(r.ReadDU())
	base := int64(r.ReadD())
	bonus := int64(r.ReadD())
	return one(gameplay.UpdateStat{Stat: gameplay.StatUpdate{Kind: kind, Value: base, Bonus: bonus}})
}

func handleSpriteChange(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	account := gameplay.AccountID(r.ReadDU())
	kind := r.ReadC()
	value := uint32(r.ReadH())
	r.ReadH() // secondary value
	switch kind {
	case spriteBase:
		return one(gameplay.ChangeJob{AccountID: account, JobID: value})
	case spriteHair:
		return one(gameplay.ChangeHair{AccountID: account, HairID: value})
	default:
		return none()
	}
}

func handleInitialStats(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	r.ReadH() // unspent stat points
	var costs [6]uint8
	for i := range costs {
		r.ReadC() // current value
		costs[i] = r.ReadC()
	}
	return one(gameplay.InitialStats{
		StrengthCost:     costs[0],
		AgilityCost:      costs[1],
		VitalityCost:     costs[2],
		IntelligenceCost: costs[3],
		DexterityCost:    costs[4],
		LuckCost:         costs[5],
	})
}
