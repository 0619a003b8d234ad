package offline

import (
	"errors"

	"github.com/hasenbanck/korangar/internal/gameplay"
	"github.com/hasenbanck/korangar/internal/handler"
	"github.com/hasenbanck/korangar/internal/scripting"
	"go.uber.org/zap"
)

// dialogState tracks the conversation in progress, if any.
type dialogState struct {
	active bool
	npc    gameplay.EntityID
	step   int
}

// talkLocked runs one dialog step and pushes the resulting page.
// p.mu must be held.
func (p *Provider) talkLocked(npc gameplay.EntityID, step, choice int) {
	page, err := p.scripts.Talk(uint32(npc), step, choice)
	if err != nil {
		p.dialog = dialogState{}
		if !errors.Is(err, scripting.ErrNoDialog) {
			p.errorMessage("The NPC does not respond.")
			return
		}
		p.log.Debug("npc has no dialog", zap.Uint32("npc", uint32(npc)))
		return
	}
	if page.End {
		p.dialog = dialogState{}
		return
	}

	p.dialog = dialogState{active: true, npc: npc, step: step}
	if page.Text != "" {
		p.push(gameplay.PhaseMap, gameplay.OpenDialog{Text: page.Text, NpcID: npc})
	}
	if page.Shop {
		p.dialog = dialogState{}
		p.push(gameplay.PhaseMap, gameplay.AskBuyOrSell{ShopID: gameplay.ShopID(npc)})
		return
	}
	switch page.Button {
	case scripting.ButtonNext:
		p.push(gameplay.PhaseMap, gameplay.AddNextButton{NpcID: npc})
	case scripting.ButtonMenu:
		p.push(gameplay.PhaseMap, gameplay.AddChoiceButtons{Choices: handler.SplitChoices(page.Menu), NpcID: npc})
	default:
		p.push(gameplay.PhaseMap, gameplay.AddCloseButton{NpcID: npc})
	}
}

func (p *Provider) StartDialog(npc gameplay.EntityID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	p.talkLocked(npc, 0, 0)
	return nil
}

// NextDialog is ignored unless npc is the partner of the open conversation.
func (p *Provider) NextDialog(npc gameplay.EntityID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	if !p.dialog.active || p.dialog.npc != npc {
		return nil
	}
	p.talkLocked(npc, p.dialog.step+1, 0)
	return nil
}

func (p *Provider) CloseDialog(npc gameplay.EntityID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	if p.dialog.npc == npc {
		p.dialog = dialogState{}
	}
	return nil
}

// ChooseDialogOption passes the 1-based option to the next step. A negative
// option cancels the conversation.
func (p *Provider) ChooseDialogOption(npc gameplay.EntityID, option int8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.requireLocked(gameplay.PhaseMap); err != nil {
		return err
	}
	if !p.dialog.active || p.dialog.npc != npc {
		return nil
	}
	if option < 0 {
		p.dialog = dialogState{}
		return nil
	}
	p.talkLocked(npc, p.dialog.step+1, int(option))
	return nil
}
