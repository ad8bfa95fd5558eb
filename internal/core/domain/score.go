package domain

// ScoreEvent names a completed action that earns points. Deltas come from
// the fixed catalog below, never from the caller.
type ScoreEvent string

const (
	EventGamePlayed    ScoreEvent = "game_played"
	EventGameWon       ScoreEvent = "game_won"
	EventPostCreated   ScoreEvent = "post_created"
	EventSwapHelped    ScoreEvent = "swap_helped"
	EventFeedbackGiven ScoreEvent = "feedback_given"
)

// scoreCatalog is the server-validated event→points table. All deltas are
// positive, which keeps the stored score monotonically non-decreasing.
var scoreCatalog = map[ScoreEvent]int64{
	EventGamePlayed:    10,
	EventGameWon:       50,
	EventPostCreated:   5,
	EventSwapHelped:    20,
	EventFeedbackGiven: 5,
}

// PointsFor resolves an event to its point value.
func PointsFor(event ScoreEvent) (int64, error) {
	points, ok := scoreCatalog[event]
	if !ok {
		return 0, ErrUnknownScoreEvent
	}
	return points, nil
}
