package engine

import "github.com/vitorpy/solana-poker/pkg/poker"

// ClaimPot settles the hand: submitted hands are ranked, winners split the
// pot evenly, and the remainder goes one chip at a time to winners in seat
// order from the dealer's left. Any seated player may trigger settlement.
func (g *Game) ClaimPot(caller Identity) error {
	if _, _, err := g.seatOf(caller); err != nil {
		return err
	}
	if g.State.TexasState != TexasClaimPot {
		return ErrInvalidPhase
	}
	if g.State.PotClaimed {
		return ErrAlreadyClaimed
	}

	winners := g.determineWinners()
	if len(winners) == 0 {
		return ErrNothingToClaim
	}

	pot := g.State.Pot
	share, remainder := poker.DistributeChips(pot, len(winners))
	for i, seat := range winners {
		amount := share
		if uint64(i) < remainder {
			amount++
		}
		g.seats[seat].Chips += amount
		g.log.Infof("game %s: seat %d wins %d", g.Config.GameID, seat, amount)
	}

	g.State.Pot = 0
	g.State.PotClaimed = true
	g.State.TexasState = TexasStartNext

	g.touch()
	return nil
}

// determineWinners returns the winning seats ordered from dealerIndex+1. A
// lone non-folded player wins outright; otherwise the submitted hands are
// compared, lower class first, then tie-breakers.
func (g *Game) determineWinners() []uint8 {
	n := g.playerCount()

	if g.activePlayers() == 1 {
		for i := uint8(0); i < n; i++ {
			if !g.seats[i].IsFolded {
				return []uint8{i}
			}
		}
		return nil
	}

	var winners []uint8
	var bestClass poker.HandClass
	var bestCards poker.HandTiebreak
	found := false

	// Seat order from dealer+1 keeps the remainder assignment deterministic.
	for k := uint8(1); k <= n; k++ {
		seat := (g.Config.DealerIndex + k) % n
		p := g.seats[seat]
		if p.IsFolded || !p.HasSubmittedHand {
			continue
		}
		if !found {
			winners = []uint8{seat}
			bestClass = p.SubmittedHand
			bestCards = p.HandCards
			found = true
			continue
		}
		switch poker.CompareHands(p.SubmittedHand, &p.HandCards, bestClass, &bestCards) {
		case 1:
			winners = winners[:0]
			winners = append(winners, seat)
			bestClass = p.SubmittedHand
			bestCards = p.HandCards
		case 0:
			winners = append(winners, seat)
		}
	}
	return winners
}
