package sim

import (
	"fmt"

	"github.com/vitorpy/solana-poker/pkg/engine"
)

// CurrentPlayer resolves the engine's turn pointer to a simulated player.
func CurrentPlayer(g *engine.Game, players []*Player) (*Player, error) {
	id, ok := g.Players.Get(g.State.CurrentTurn)
	if !ok {
		return nil, fmt.Errorf("sim: no player at seat %d", g.State.CurrentTurn)
	}
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("sim: unknown player at seat %d", g.State.CurrentTurn)
}

// RunShuffle drives the whole shuffle phase: every player reveals their
// seed, the first shuffler maps the original deck, then each player in turn
// shuffles and finally locks.
func RunShuffle(g *engine.Game, players []*Player) error {
	for range players {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := p.Generate(g); err != nil {
			return fmt.Errorf("sim: generate: %w", err)
		}
	}

	mapped := false
	for range players {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if !mapped {
			if err := p.MapDeck(g); err != nil {
				return fmt.Errorf("sim: map deck: %w", err)
			}
			mapped = true
		}
		if err := p.Shuffle(g); err != nil {
			return fmt.Errorf("sim: shuffle: %w", err)
		}
	}

	for range players {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := p.Lock(g); err != nil {
			return fmt.Errorf("sim: lock: %w", err)
		}
	}
	return nil
}

// PostBlinds posts the small and big blinds for the current hand.
func PostBlinds(g *engine.Game, players []*Player) error {
	for i := 0; i < 2; i++ {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		state, ok := g.PlayerState(p.ID)
		if !ok {
			return engine.ErrNotAPlayer
		}
		owed := g.Config.SmallBlind
		if i == 1 {
			owed = g.Config.BigBlind()
		}
		if owed > state.Chips {
			owed = state.Chips
		}
		if err := g.PlaceBlind(p.ID, owed); err != nil {
			return fmt.Errorf("sim: blind: %w", err)
		}
	}
	return nil
}

// revealOthers has every player except the card owner strip their lock from
// the card currently under reveal.
func revealOthers(g *engine.Game, players []*Player) error {
	owner := g.Deck.Owner(g.State.CardToReveal)
	for _, p := range players {
		if p.ID == owner {
			continue
		}
		if err := p.Reveal(g); err != nil {
			return fmt.Errorf("sim: reveal: %w", err)
		}
	}
	return nil
}

// DealHoleCards runs draw/reveal cycles until every player holds two hole
// cards and the pre-flop betting round opens.
func DealHoleCards(g *engine.Game, players []*Player) error {
	for g.State.TexasState == engine.TexasDrawing {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := p.Draw(g); err != nil {
			return fmt.Errorf("sim: draw: %w", err)
		}
		if err := revealOthers(g, players); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws the player's next hole card.
func (p *Player) Draw(g *engine.Game) error {
	return g.Draw(p.ID)
}

// DealCommunityStage runs one deal/reveal/open cycle per board card until
// the stage completes and the next betting round (or showdown) opens.
func DealCommunityStage(g *engine.Game, players []*Player) error {
	for g.State.TexasState == engine.TexasCommunityCardsAwaiting {
		dealer, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := g.DealCommunityCard(dealer.ID); err != nil {
			return fmt.Errorf("sim: deal: %w", err)
		}
		if err := revealOthers(g, players); err != nil {
			return err
		}
		if err := dealer.OpenCommunity(g); err != nil {
			return fmt.Errorf("sim: open community: %w", err)
		}
	}
	return nil
}

// CheckAround has every player check, or call the outstanding amount, until
// the betting round closes.
func CheckAround(g *engine.Game, players []*Player) error {
	round := g.State.BettingRound
	for g.State.TexasState == engine.TexasBetting && g.State.BettingRound == round {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		state, ok := g.PlayerState(p.ID)
		if !ok {
			return engine.ErrNotAPlayer
		}
		owed := g.State.CurrentCallAmount - state.CurrentBet
		if err := g.Bet(p.ID, owed); err != nil {
			return fmt.Errorf("sim: bet: %w", err)
		}
	}
	return nil
}

// RunShowdown opens every active player's hole cards and submits best hands.
func RunShowdown(g *engine.Game, players []*Player) error {
	for g.State.TexasState == engine.TexasRevealing {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := p.OpenHole(g); err != nil {
			return fmt.Errorf("sim: open hole: %w", err)
		}
	}
	for g.State.TexasState == engine.TexasSubmitBest {
		p, err := CurrentPlayer(g, players)
		if err != nil {
			return err
		}
		if err := p.SubmitBestHand(g); err != nil {
			return fmt.Errorf("sim: submit hand: %w", err)
		}
	}
	return nil
}
