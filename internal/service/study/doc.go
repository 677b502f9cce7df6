// Package study runs flashcard study sessions: it presents the current set's
// terms in random order, grades each answer, scores the session, gives one
// retry pass over the misses, and persists the result.
package study
