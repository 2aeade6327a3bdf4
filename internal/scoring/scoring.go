// Package scoring turns correct guesses into points.
package scoring

const (
	// GuessBase is what a correct guess is worth on top of the time bonus,
	// even when it lands on the very last second.
	GuessBase = 50
	// GuessTimeBonus is the extra reward for guessing with the whole time
	// budget left. It shrinks linearly with the time left.
	GuessTimeBonus = 100
	// DrawerBonus is awarded to the drawer for every participant who guesses
	// the word.
	DrawerBonus = 20
)

// Award is the points handed out for a single correct guess.
type Award struct {
	Guesser int `json:"guesser"`
	Drawer  int `json:"drawer"`
}

// GuesserReward computes ceil(timeLeft/timeBudget * 100) + 50. Out of range
// inputs are clamped, so the result always lies in [50, 150].
func GuesserReward(timeLeft, timeBudget int) int {
	if timeBudget <= 0 {
		return GuessBase
	}
	if timeLeft < 0 {
		timeLeft = 0
	}
	if timeLeft > timeBudget {
		timeLeft = timeBudget
	}
	// Integer ceiling keeps 40/60 at exactly 67 instead of trusting float rounding.
	bonus := (timeLeft*GuessTimeBonus + timeBudget - 1) / timeBudget
	return bonus + GuessBase
}

// DrawerReward is the flat bonus the drawer gets per correct guesser.
func DrawerReward() int {
	return DrawerBonus
}

// ForCorrectGuess returns both rewards for a guess made with timeLeft seconds
// remaining out of timeBudget.
func ForCorrectGuess(timeLeft, timeBudget int) Award {
	return Award{
		Guesser: GuesserReward(timeLeft, timeBudget),
		Drawer:  DrawerReward(),
	}
}
