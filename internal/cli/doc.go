// Package cli implements the interactive terminal front end: a line-based
// console and the numeric game menu that dispatches to the set store and the
// study service.
package cli
