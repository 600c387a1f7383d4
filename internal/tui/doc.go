// Package tui implements the terminal versions of the tutorial programs:
// the tic-tac-toe board with its move history, and the filterable
// product table. Both are bubbletea models driving the same entity
// code as the HTTP surface. All state lives in the model and is lost
// when the program exits.
package tui
