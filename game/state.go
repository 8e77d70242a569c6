package game

type State int

const (
	Menu State = iota
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome is how the last run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeWon means the player outlasted the timer.
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}
