package engine

// Protocol sizing constants.
const (
	// DeckSize is the number of cards in the deck.
	DeckSize = 52
	// CardsPerPart is the number of cards carried by each half of a split
	// MapDeck/Shuffle/Lock submission.
	CardsPerPart = DeckSize / 2
	// HoleCardsPerPlayer is the number of hole cards dealt to each player.
	HoleCardsPerPlayer = 2
	// MinPlayers and MaxPlayers bound the table size.
	MinPlayers = 2
	MaxPlayers = 10
	// CommunityCardCount is the number of board cards in a full hand.
	CommunityCardCount = 5

	// NoCard marks an unassigned hole-card slot.
	NoCard = 255
)

// Defaults applied when InitializeGame does not override them.
const (
	DefaultTimeoutSeconds  = 120
	DefaultSlashPercentage = 10
)
