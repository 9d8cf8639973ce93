package poker

// HandClass is a 10-way classification of a 5-card hand. Lower values are
// stronger: a royal flush is 0, a bare high card is 9.
type HandClass uint8

const (
	RoyalFlush HandClass = iota
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	Pair
	HighCard
)

var handClassNames = [...]string{
	"royal flush", "straight flush", "four of a kind", "full house", "flush",
	"straight", "three of a kind", "two pair", "pair", "high card",
}

// String returns a human-readable class name.
func (c HandClass) String() string {
	if int(c) < len(handClassNames) {
		return handClassNames[c]
	}
	return "unknown"
}

// HandTiebreak holds up to five order values used to break ties between
// hands of the same class, most significant first. Unused slots are -1.
type HandTiebreak = [5]int8

// sortDescending sorts five order values in place, highest first.
func sortDescending(cards *[5]int8) {
	for i := 1; i < 5; i++ {
		key := cards[i]
		j := i
		for j > 0 && cards[j-1] < key {
			cards[j] = cards[j-1]
			j--
		}
		cards[j] = key
	}
}

// EvaluateHand classifies a 5-card hand and produces its tie-breaker order
// values. The ace-low straight A-2-3-4-5 is reported with a high card of 5
// so it ranks below 2-3-4-5-6.
func EvaluateHand(cards [5]Card) (HandClass, HandTiebreak) {
	retOrder := HandTiebreak{-1, -1, -1, -1, -1}
	var sortCards [5]int8
	class := HighCard

	var suits [4]uint8
	var valMatch [13]uint8
	pairs := [2]int8{-1, -1}

	for i := 0; i < 5; i++ {
		value, suit := Split(cards[i])
		valMatch[value]++
		sortCards[i] = OrderValue(value)

		switch {
		case valMatch[value] == 4 && class > FourOfAKind:
			class = FourOfAKind
			retOrder[0] = OrderValue(value)
		case valMatch[value] == 3 && class > ThreeOfAKind:
			class = ThreeOfAKind
			retOrder[0] = OrderValue(value)
		case valMatch[value] == 2:
			if pairs[0] == -1 {
				pairs[0] = OrderValue(value)
			} else {
				pairs[1] = OrderValue(value)
			}
		}

		suits[suit]++
		if suits[suit] == 5 {
			// All five cards share a suit; only straight/flush classes remain.
			sortDescending(&sortCards)
			switch {
			case sortCards[0]-sortCards[4] == 4:
				if sortCards[0] == int8(AceHigh) {
					return RoyalFlush, sortCards
				}
				return StraightFlush, sortCards
			case sortCards[0] == int8(AceHigh) && sortCards[1] == 4 && sortCards[1]-sortCards[4] == 3:
				// Ace-low straight flush: ranks as 5-high.
				return StraightFlush, HandTiebreak{4, 3, 2, 1, 0}
			default:
				return Flush, sortCards
			}
		}
	}

	if class == FourOfAKind {
		for i := 0; i < 5; i++ {
			if sortCards[i] != retOrder[0] {
				retOrder[1] = sortCards[i]
				return class, retOrder
			}
		}
	}

	if class == ThreeOfAKind {
		if pairs[1] > -1 {
			// Trips plus a pair: the pair slot that isn't the trip rank.
			if pairs[0] == retOrder[0] {
				retOrder[1] = pairs[1]
			} else {
				retOrder[1] = pairs[0]
			}
			return FullHouse, retOrder
		}
		for i := 0; i < 5; i++ {
			if sortCards[i] != retOrder[0] {
				if sortCards[i] > retOrder[1] {
					retOrder[2] = retOrder[1]
					retOrder[1] = sortCards[i]
				} else {
					retOrder[2] = sortCards[i]
				}
			}
		}
		return class, retOrder
	}

	if pairs[0] == -1 {
		sortDescending(&sortCards)
		switch {
		case sortCards[0]-sortCards[4] == 4:
			return Straight, sortCards
		case sortCards[0] == int8(AceHigh) && sortCards[1] == 4 && sortCards[1]-sortCards[4] == 3:
			return Straight, HandTiebreak{4, 3, 2, 1, 0}
		default:
			return HighCard, sortCards
		}
	}

	if pairs[1] != -1 {
		if pairs[0] > pairs[1] {
			retOrder[0] = pairs[0]
			retOrder[1] = pairs[1]
		} else {
			retOrder[0] = pairs[1]
			retOrder[1] = pairs[0]
		}
		for i := 0; i < 5; i++ {
			if sortCards[i] != pairs[0] && sortCards[i] != pairs[1] {
				retOrder[2] = sortCards[i]
			}
		}
		return TwoPair, retOrder
	}

	sortDescending(&sortCards)
	retOrder[0] = pairs[0]
	cnt := 1
	for i := 0; i < 5; i++ {
		if sortCards[i] != pairs[0] {
			retOrder[cnt] = sortCards[i]
			cnt++
		}
	}
	return Pair, retOrder
}
