// Package domain contains the core entities of the karuta layout service:
// the card catalog, the player's 25-card selection, and the assignment of
// those cards into the six zones of the board. It has no knowledge of
// storage or delivery.
package domain
