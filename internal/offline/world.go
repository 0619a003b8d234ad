package offline

import (
	"context"
	"fmt"
	"time"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"go.uber.org/zap"
)

func (p *Provider) MapLoaded() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requireLocked(gameplay.PhaseMap)
}

func (p *Provider) RequestClientTick() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	p.push(gameplay.PhaseMap, gameplay.UpdateClientTick{ClientTick: p.clientTick(), ReceivedAt: time.Now()})
	return nil
}

func (p *Provider) errorMessage(format string, args ...any) {
	p.push(gameplay.PhaseMap, gameplay.ChatMessage{
		Text:  fmt.Sprintf(format, args...),
		Color: gameplay.MessageColor{Kind: gameplay.MessageColorError},
	})
}

// moveLocked relocates the character and persists the new position.
// p.mu must be held.
func (p *Provider) moveLocked(mapName string, x, y uint16) {
	p.character.MapName = mapName
	p.character.X, p.character.Y = x, y
	p.position = gameplay.WorldPosition{X: x, Y: y}
	if err := p.chars.SavePosition(context.Background(), p.character.ID, mapName, x, y); err != nil {
		p.log.Warn("save position", zap.Error(err))
	}
}

// Respawn returns the character to the spawn point at full health.
func (p *Provider) Respawn() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	spawn := p.lib.Character.Spawn
	p.moveLocked(spawn.Map, spawn.X, spawn.Y)
	p.character.HP = p.character.MaxHP
	p.push(gameplay.PhaseMap,
		gameplay.ResurrectPlayer{EntityID: gameplay.EntityID(p.account.ID)},
		gameplay.ChangeMap{MapName: spawn.Map, Position: gameplay.TilePosition{X: spawn.X, Y: spawn.Y}},
	)
	return nil
}

func (p *Provider) LogOut() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	p.dialog = dialogState{}
	p.shop = nil
	p.push(gameplay.PhaseMap, gameplay.LoggedOut{})
	return nil
}

// PlayerMove walks straight to the destination; tiles outside the map are
// ignored.
func (p *Provider) PlayerMove(position gameplay.WorldPosition) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	if m := p.lib.Maps.Get(p.character.MapName); m != nil && !m.Contains(position.X, position.Y) {
		return nil
	}
	origin := p.position
	p.moveLocked(p.character.MapName, position.X, position.Y)
	p.position.Direction = position.Direction
	p.push(gameplay.PhaseMap, gameplay.PlayerMove{
		Origin:            origin,
		Destination:       p.position,
		StartingTimestamp: p.clientTick(),
	})
	return nil
}

func (p *Provider) WarpToMap(mapName string, position gameplay.TilePosition) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	m := p.lib.Maps.Get(mapName)
	if m == nil {
		p.errorMessage("Map %s does not exist.", mapName)
		return nil
	}
	if !m.Contains(position.X, position.Y) {
		p.errorMessage("Position %d,%d is outside of %s.", position.X, position.Y, m.Name)
		return nil
	}
	p.dialog = dialogState{}
	p.shop = nil
	p.moveLocked(m.Name, position.X, position.Y)
	p.push(gameplay.PhaseMap, gameplay.ChangeMap{MapName: m.Name, Position: position})
	return nil
}

// SendChatMessage echoes the line back the way a server does for the
// sender's own messages.
func (p *Provider) SendChatMessage(playerName, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	p.push(gameplay.PhaseMap, gameplay.ChatMessage{
		Text:  playerName + " : " + text,
		Color: gameplay.MessageColor{Kind: gameplay.MessageColorServer},
	})
	return nil
}

// notImplemented performs the connection check shared by every command the
// offline backend does not simulate.
func (p *Provider) notImplemented(phase gameplay.Phase) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(phase); err != nil {
		return err
	}
	return ErrNotImplemented
}

// noop performs the connection check and otherwise accepts the command.
func (p *Provider) noop(phase gameplay.Phase) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requireLocked(phase)
}

func (p *Provider) EntityDetails(gameplay.EntityID) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) PlayerAttack(gameplay.EntityID) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) RequestItemEquip(gameplay.InventoryIndex, gameplay.EquipPosition) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) RequestItemUnequip(gameplay.InventoryIndex) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) CastSkill(gameplay.SkillID, gameplay.SkillLevel, gameplay.EntityID) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) CastGroundSkill(gameplay.SkillID, gameplay.SkillLevel, gameplay.TilePosition) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) CastChannelingSkill(gameplay.SkillID, gameplay.SkillLevel, gameplay.EntityID) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) StopChannelingSkill(gameplay.SkillID) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) SetHotkeyData(gameplay.HotbarTab, gameplay.HotbarSlot, gameplay.HotkeyData) error {
	return p.notImplemented(gameplay.PhaseMap)
}

func (p *Provider) RequestStatUp(gameplay.StatUpType) error {
	return p.notImplemented(gameplay.PhaseMap)
}

// Friends are not simulated; requests are accepted and nothing happens.

func (p *Provider) AddFriend(string) error {
	return p.noop(gameplay.PhaseMap)
}

func (p *Provider) RemoveFriend(gameplay.AccountID, gameplay.CharacterID) error {
	return p.noop(gameplay.PhaseMap)
}

func (p *Provider) RejectFriendRequest(gameplay.AccountID, gameplay.CharacterID) error {
	return p.noop(gameplay.PhaseMap)
}

func (p *Provider) AcceptFriendRequest(gameplay.AccountID, gameplay.CharacterID) error {
	return p.noop(gameplay.PhaseMap)
}
