// meta/meta.go
package meta

import "penguins/game"

// MAX_TURNS caps a game; a full game needs at most one turn per cell.
const MAX_TURNS = 2 * game.Cells

// MIN_PLACEMENT_FIELDS is the number of one-fish floes a generated board needs
// so both teams can place every penguin.
const MIN_PLACEMENT_FIELDS = 2 * game.MaxPenguins

// ACTION_QUEUE defines the buffer of pending actions on the server.
const ACTION_QUEUE = 100
