package offline

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/persist"
	"go.uber.org/zap"
)

const maxCharacterNameLength = 23

func characterInformation(c *persist.CharacterRow) gameplay.CharacterInformation {
	return gameplay.CharacterInformation{
		CharacterID:    gameplay.CharacterID(c.ID),
		Experience:     c.BaseExp,
		Money:          c.Zeny,
		JobExperience:  c.JobExp,
		JobLevel:       c.JobLevel,
		HealthPoints:   c.HP,
		MaxHealth:      c.MaxHP,
		SpellPoints:    c.SP,
		MaxSpellPoints: c.MaxSP,
		MovementSpeed:  150,
		Job:            c.Job,
		Head:           c.Head,
		BaseLevel:      c.BaseLevel,
		Name:           c.Name,
		Strength:       c.Str,
		Agility:        c.Agi,
		Vitality:       c.Vit,
		Intelligence:   c.Int,
		Dexterity:      c.Dex,
		Luck:           c.Luk,
		Slot:           c.Slot,
		MapName:        c.MapName,
		Sex:            gameplay.Sex(c.Sex),
	}
}

// pushCharacterListLocked reports the account's characters. p.mu must be
// held.
func (p *Provider) pushCharacterListLocked() {
	rows, err := p.chars.LoadByAccount(context.Background(), p.account.ID)
	if err != nil {
		p.log.Error("load characters", zap.Error(err))
		return
	}
	list := make([]gameplay.CharacterInformation, 0, len(rows))
	for i := range rows {
		list = append(list, characterInformation(&rows[i]))
	}
	p.push(gameplay.PhaseCharacter, gameplay.CharacterList{Characters: list})
}

func (p *Provider) RequestCharacterList() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseCharacter); err != nil {
		return err
	}
	p.pushCharacterListLocked()
	return nil
}

func (p *Provider) SelectCharacter(slot int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseCharacter); err != nil {
		return err
	}

	c, err := p.chars.LoadBySlot(context.Background(), p.account.ID, uint8(slot))
	if err != nil {
		if !errors.Is(err, persist.ErrCharacterNotFound) {
			p.log.Error("load character", zap.Int("slot", slot), zap.Error(err))
		}
		reason := gameplay.SelectionRejectedFromServer
		p.push(gameplay.PhaseCharacter, gameplay.CharacterSelectionFailed{Reason: reason, Message: reason.Message()})
		return nil
	}
	p.selected = c
	p.push(gameplay.PhaseCharacter, gameplay.CharacterSelected{LoginData: gameplay.CharacterServerLoginData{
		ServerIP:    loopback,
		ServerPort:  mapPort,
		CharacterID: gameplay.CharacterID(c.ID),
	}})
	return nil
}

func (p *Provider) CreateCharacter(slot int, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseCharacter); err != nil {
		return err
	}

	fail := func(reason gameplay.UnifiedCharacterCreationFailedReason) error {
		p.push(gameplay.PhaseCharacter, gameplay.CharacterCreationFailed{Reason: reason, Message: reason.Message()})
		return nil
	}
	if slot < 0 || slot >= p.lib.Character.NormalSlots {
		return fail(gameplay.CreationNotAllowedToUseSlot)
	}
	if name == "" || utf8.RuneCountInString(name) > maxCharacterNameLength {
		return fail(gameplay.CreationFailed)
	}

	def := p.lib.Character
	row := &persist.CharacterRow{
		AccountID: p.account.ID,
		Slot:      uint8(slot),
		Name:      name,
		Sex:       p.account.Sex,
		Head:      1,
		BaseLevel: 1,
		JobLevel:  1,
		Zeny:      def.Zeny,
		HP:        def.HP,
		MaxHP:     def.HP,
		SP:        def.SP,
		MaxSP:     def.SP,
		Str:       def.Stats,
		Agi:       def.Stats,
		Vit:       def.Stats,
		Int:       def.Stats,
		Dex:       def.Stats,
		Luk:       def.Stats,
		MapName:   def.Spawn.Map,
		X:         def.Spawn.X,
		Y:         def.Spawn.Y,
	}

	ctx := context.Background()
	switch err := p.chars.Create(ctx, row); {
	case errors.Is(err, persist.ErrNameTaken):
		return fail(gameplay.CreationNameAlreadyUsed)
	case errors.Is(err, persist.ErrSlotTaken):
		return fail(gameplay.CreationNotAllowedToUseSlot)
	case err != nil:
		p.log.Error("create character", zap.String("name", name), zap.Error(err))
		return fail(gameplay.CreationFailed)
	}

	for _, it := range def.Items {
		item := p.lib.Items.Get(it.ItemID)
		if _, err := p.items.Add(ctx, row.ID, it.ItemID, it.Amount, item.EquipPosition); err != nil {
			p.log.Warn("grant starter item", zap.Uint32("item", it.ItemID), zap.Error(err))
		}
	}

	p.log.Info("offline character created", zap.String("name", name), zap.Int("slot", slot))
	p.push(gameplay.PhaseCharacter, gameplay.CharacterCreated{Character: characterInformation(row)})
	return nil
}

func (p *Provider) DeleteCharacter(id gameplay.CharacterID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseCharacter); err != nil {
		return err
	}

	if p.connected[gameplay.PhaseMap] && p.character != nil && p.character.ID == uint32(id) {
		reason := gameplay.DeletionNotAllowed
		p.push(gameplay.PhaseCharacter, gameplay.CharacterDeletionFailed{Reason: reason, Message: reason.Message()})
		return nil
	}
	if err := p.chars.Delete(context.Background(), p.account.ID, uint32(id)); err != nil {
		reason := gameplay.DeletionCharacterNotFound
		if !errors.Is(err, persist.ErrCharacterNotFound) {
			p.log.Error("delete character", zap.Uint32("id", uint32(id)), zap.Error(err))
			reason = gameplay.DeletionNotAllowed
		}
		p.push(gameplay.PhaseCharacter, gameplay.CharacterDeletionFailed{Reason: reason, Message: reason.Message()})
		return nil
	}
	if p.selected != nil && p.selected.ID == uint32(id) {
		p.selected = nil
	}
	p.push(gameplay.PhaseCharacter, gameplay.CharacterDeleted{})
	return nil
}

func (p *Provider) SwitchCharacterSlot(origin, destination int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseCharacter); err != nil {
		return err
	}

	n := p.lib.Character.NormalSlots
	if origin < 0 || origin >= n || destination < 0 || destination >= n || origin == destination {
		p.push(gameplay.PhaseCharacter, gameplay.CharacterSlotSwitchFailed{})
		return nil
	}
	if err := p.chars.SwitchSlot(context.Background(), p.account.ID, uint8(origin), uint8(destination)); err != nil {
		if !errors.Is(err, persist.ErrCharacterNotFound) {
			p.log.Error("switch slot", zap.Error(err))
		}
		p.push(gameplay.PhaseCharacter, gameplay.CharacterSlotSwitchFailed{})
		return nil
	}
	p.push(gameplay.PhaseCharacter, gameplay.CharacterSlotSwitched{})
	return nil
}
