package review

// reviewSavedMsg reports the outcome of persisting one review.
type reviewSavedMsg struct {
	Err error
}

// reviewEndMsg is sent once every question has been judged or the reviewer
// quits.
type reviewEndMsg struct{}
