package matchmaking

import "math"

// MaxScore is the largest score a participant can hold. It is the largest
// integer a float64 represents exactly, so repeated averaging stays stable.
const MaxScore = float64(1<<53 - 1)

const scoreScale = 1000

// ComputeScore converts a win/loss record into a score. Zero wins or losses
// count as one. Negative values mark the record as corrupted and yield MaxScore.
func ComputeScore(wins, losses int) (score float64, corrupted bool) {
	if wins == 0 {
		wins = 1
	}
	if losses == 0 {
		losses = 1
	}
	if wins < 0 || losses < 0 {
		return MaxScore, true
	}
	return math.Min(float64(wins)/float64(losses)*scoreScale, MaxScore), false
}
