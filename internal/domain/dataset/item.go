package dataset

// Item is one flashcard record with its performance counters.
//
// Seq is the 1-based display position within the dataset and is kept
// dense: deleting an item renumbers everything after it. ID is the
// stable identity that survives renumbering; judgments are always
// keyed on it, never on prompt/response text.
type Item struct {
	ID            string
	Seq           int
	Prompt        string
	Response      string
	CorrectCount  int
	TotalAttempts int
	Mastery       float64
}
