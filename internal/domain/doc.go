// Package domain contains the core entities of the flashcard game: flashcard
// sets, their study progress, and the rules for grading an answer and scoring
// a session. It is independent of the terminal and of the progress file.
package domain
