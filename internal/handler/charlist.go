package handler

import (
	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/net/packet"
)

// CharacterInformationSize is the wire size of one character entry.
const CharacterInformationSize = 120

// handleCharacterServerLoginFailed reuses the login refusal codes; the
// character server only sends the short form.
func handleCharacterServerLoginFailed(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	reason, message, err := TranslateLoginFailed(packet.LoginFailedReason(r.ReadC()))
	if err != nil {
		return gameplay.NoEvents(), err
	}
	return one(gameplay.CharacterServerConnectionFailed{Reason: reason, Message: message})
}

func handleCharacterServerLoginSuccess(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	normal := r.ReadC()
	r.Skip(4) // vip, billing, producible and valid slot counts
	return one(gameplay.CharacterServerConnected{NormalSlotCount: int(normal)})
}

func handleCharacterList(_ *packet.Reassembly, r *packet.Reader) (gameplay.Events, error) {
	characters := make([]gameplay.CharacterInformation, 0, r.Remaining()/CharacterInformationSize)
	for r.Remaining() >= CharacterInformationSize {
		characters = append(characters, readCharacterInformation(r))
	}
	return one(gameplay.CharacterList{Characters: characters})
}

func readCharacterInformation(r *packet.Reader) gameplay.CharacterInformation {
	return gameplay.CharacterInformation{
		CharacterID:    gameplay.CharacterID(r.ReadDU()),
		Experience:     r.ReadQ(),
		Money:          r.ReadD(),
		JobExperience:  r.ReadQ(),
		JobLevel:       r.ReadD(),
		HealthPoints:   r.ReadQ(),
		MaxHealth:      r.ReadQ(),
		SpellPoints:    r.ReadQ(),
		MaxSpellPoints: r.ReadQ(),
		MovementSpeed:  r.ReadH(),
		Job:            r.ReadH(),
		Head:           r.ReadH(),
		Weapon:         r.ReadDU(),
		BaseLevel:      r.ReadH(),
		Name:           r.ReadFixedS(24),
		Strength:       r.ReadC(),
		Agility:        r.ReadC(),
		Vitality:       r.ReadC(),
		Intelligence:   r.ReadC(),
		Dexterity:      r.ReadC(),
		Luck:           r.ReadC(),
		Slot:           r.ReadC(),
		MapName:        r.ReadFixedS(16),
		Sex:            gameplay.Sex(r.ReadC()),
	}
}

// WriteCharacterInformation encodes c in the layout readCharacterInformation
// expects.
func WriteCharacterInformation(w *packet.Writer, c gameplay.CharacterInformation) {
	w.WriteDU(uint32(c.CharacterID))
	w.WriteQ(c.Experience)
	w.WriteD(c.Money)
	w.WriteQ(c.JobExperience)
	w.WriteD(c.JobLevel)
	w.WriteQ(c.HealthPoints)
	w.WriteQ(c.MaxHealth)
	w.WriteQ(c.SpellPoints)
	w.WriteQ(c.MaxSpellPoints)
	w.WriteH(c.MovementSpeed)
	w.WriteH(c.Job)
	w.WriteH(c.Head)
	w.WriteDU(c.Weapon)
	w.WriteH(c.BaseLevel)
	w.WriteFixedS(c.Name, 24)
	w.WriteC(c.Strength)
	w.WriteC(c.Agility)
	w.WriteC(c.Vitality)
	w.WriteC(c.Intelligence)
	w.WriteC(c.Dexterity)
	w.WriteC(c.Luck)
	w.WriteC(c.Slot)
	w.WriteFixedS(c.MapName, 16)
	w.WriteC(byte(c.Sex))
}
