// Package store holds the in-memory set store and defines the persistence
// interface that mirrors it to disk. The game logic works against these types,
// independent of how the progress file is encoded.
package store
