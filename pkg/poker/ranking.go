package poker

// CompareHands compares two evaluated hands. It returns 1 if the first hand
// wins, 2 if the second wins, and 0 on an exact tie. Lower class values win;
// within a class the tie-breaker order values are compared lexicographically.
func CompareHands(class1 HandClass, cards1 *HandTiebreak, class2 HandClass, cards2 *HandTiebreak) uint8 {
	if class1 > class2 {
		return 2
	}
	if class1 < class2 {
		return 1
	}
	for i := 0; i < 5; i++ {
		if cards1[i] == cards2[i] {
			continue
		}
		if cards1[i] < cards2[i] {
			return 2
		}
		return 1
	}
	return 0
}

// BestHand selects the strongest 5-card hand out of 5..7 cards by evaluating
// every 5-card subset. It returns the winning cards together with their
// class and tie-breakers. Clients use this to pick the hand they submit; the
// chain only ever verifies a submitted 5-card hand.
func BestHand(cards []Card) ([5]Card, HandClass, HandTiebreak) {
	var bestCards [5]Card
	bestClass := HighCard
	bestTiebreak := HandTiebreak{-1, -1, -1, -1, -1}
	first := true

	var idx [5]int
	n := len(cards)
	for idx[0] = 0; idx[0] < n-4; idx[0]++ {
		for idx[1] = idx[0] + 1; idx[1] < n-3; idx[1]++ {
			for idx[2] = idx[1] + 1; idx[2] < n-2; idx[2]++ {
				for idx[3] = idx[2] + 1; idx[3] < n-1; idx[3]++ {
					for idx[4] = idx[3] + 1; idx[4] < n; idx[4]++ {
						var hand [5]Card
						for k := 0; k < 5; k++ {
							hand[k] = cards[idx[k]]
						}
						class, tiebreak := EvaluateHand(hand)
						if first || CompareHands(class, &tiebreak, bestClass, &bestTiebreak) == 1 {
							bestCards = hand
							bestClass = class
							bestTiebreak = tiebreak
							first = false
						}
					}
				}
			}
		}
	}
	return bestCards, bestClass, bestTiebreak
}

// DistributeChips splits an amount evenly among winners, returning the share
// per winner and the remainder left after equal shares.
func DistributeChips(total uint64, numWinners int) (share, remainder uint64) {
	if numWinners == 0 {
		return 0, total
	}
	n := uint64(numWinners)
	return total / n, total % n
}
