package handler

import (
	"strings"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

func handleEntityMove(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	origin, destination := r.ReadPositionPair()
	tick := gameplay.ClientTick(r.ReadDU())
	return one(gameplay.EntityMove{
		EntityID:          id,
		Origin:            origin,
		Destination:       destination,
		StartingTimestamp: tick,
	})
}

func handlePlayerMove(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	tick := gameplay.ClientTick(r.ReadDU())
	origin, destination := r.ReadPositionPair()
	return one(gameplay.PlayerMove{
		Origin:            origin,
		Destination:       destination,
		StartingTimestamp: tick,
	})
}

func handleChangeMap(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	name := strings.ReplaceAll(r.ReadFixedS(16), ".gat", "")
	return one(gameplay.ChangeMap{MapName: name, Position: r.ReadTile()})
}

func handleResurrection(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	r.ReadH() // resurrection type
	return one(gameplay.ResurrectPlayer{EntityID: id})
}

func readEntityHead(r *packet.Reader) gameplay.EntityData {
	return gameplay.EntityData{
		ObjectType:    r.ReadC(),
		EntityID:      gameplay.EntityID(r.ReadDU()),
		MovementSpeed: r.ReadH(),
		Job:           r.ReadH(),
		Head:          r.ReadH(),
		HealthPoints:  r.ReadD(),
		MaxHealth:     r.ReadD(),
		Sex:           gameplay.Sex(r.ReadC()),
	}
}

// handleEntityAppeared processes both the standing and the spawn variant.
func handleEntityAppeared(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	entity := readEntityHead(r)
	entity.Position = r.ReadPosition()
	entity.Name = r.ReadFixedS(24)
	return one(gameplay.AddEntity{Entity: entity})
}

func handleMovingEntityAppeared(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	entity := readEntityHead(r)
	origin, destination := r.ReadPositionPair()
	r.ReadDU() // move start time
	entity.Name = r.ReadFixedS(24)
	entity.Position = origin
	entity.Destination = &destination
	return one(gameplay.AddEntity{Entity: entity})
}

func handleEntityDisappeared(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	return one(gameplay.RemoveEntity{EntityID: id, Reason: gameplay.DisappearanceReason(r.ReadC())})
}

// handleEntityDetails processes both the player and the generic variant;
// a character id doubles as the entity id of that player.
func handleEntityDetails(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	id := gameplay.EntityID(r.ReadDU())
	return one(gameplay.UpdateEntityDetails{EntityID: id, Name: r.ReadFixedS(24)})
}

func handleEntityHealth(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	return one(gameplay.UpdateEntityHealth{
		EntityID:            gameplay.EntityID(r.ReadDU()),
		HealthPoints:        int(r.ReadDU()),
		MaximumHealthPoints: int(r.ReadDU()),
	})
}
