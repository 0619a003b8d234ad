package handler

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// Damage types that produce an event.
const (
	damageNormal   = 0
	damageStandUp  = 3
	damageCritical = 10
)

type damage struct {
	source, destination gameplay.EntityID
	duration            uint32
	amount              int32
	kind                uint8
}

func (d damage) events() (gameplay.Events, error) {
	switch d.kind {
	case damageNormal, damageCritical:
		effect := gameplay.DamageEffect{
			SourceEntityID:      d.source,
			DestinationEntityID: d.destination,
			AttackDuration:      d.duration,
			IsCritical:          d.kind == damageCritical,
		}
		if d.amount > 0 {
			amount := int(d.amount)
			effect.DamageAmount = &amount
		}
		return one(effect)
	case damageStandUp:
		return one(gameplay.PlayerStandUp{EntityID: d.destination})
	default:
		return none()
	}
}

func readDamageHead(r *packet.Reader) damage {
	d := damage{
		source:      gameplay.EntityID(r.ReadDU()),
		destination: gameplay.EntityID(r.ReadDU()),
	}
	r.ReadDU() // server tick
	d.duration = r.ReadDU()
	r.ReadDU() // target delay
	d.amount = r.ReadD()
	return d
}

func handleDamage(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	d := readDamageHead(r)
	r.ReadC() // is spell points
	r.ReadH() // hit count
	d.kind = r.ReadC()
	r.ReadD() // left hand damage
	return d.events()
}

func handleDamage3(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	d := readDamageHead(r)
	r.ReadH() // hit count
	d.kind = r.ReadC()
	r.ReadD() // left hand damage
	return d.events()
}

func handleAttackFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.AttackFailed{
		TargetEntityID: gameplay.EntityID(r.ReadDU()),
		TargetPosition: r.ReadTile(),
		PlayerPosition: r.ReadTile(),
		AttackRange:    r.ReadH(),
	})
}
