package game

// #region outcome
// Outcome is the result of a round from the computer's point of view.
type Outcome int8

const (
	ComputerLoss Outcome = -1
	Tie          Outcome = 0
	ComputerWin  Outcome = 1
)

// Score returns the signed score delta for the computer.
func (o Outcome) Score() int {
	return int(o)
}

func (o Outcome) String() string {
	switch o {
	case ComputerWin:
		return "Victory"
	case Tie:
		return "Tie"
	case ComputerLoss:
		return "Loss"
	}
	return "Unknown"
}

// #endregion outcome

// #region resolve
// Resolve scores a round. The computer wins when its move is the counter to
// the opponent's move, ties on equal moves and loses otherwise.
func Resolve(opponent, computer Move) Outcome {
	switch {
	case opponent == computer:
		return Tie
	case CounterTo(opponent) == computer:
		return ComputerWin
	default:
		return ComputerLoss
	}
}

// #endregion resolve
