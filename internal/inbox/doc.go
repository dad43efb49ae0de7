// Package inbox is the single notification filtering and presentation model
// shared by every notification surface: relative timestamps, urgency and
// category affordances, filter modes with their badge counts, and the
// read/delete state transitions.
//
// Every function here is pure. Collections are taken as explicit inputs and
// new collections are returned; inputs are never modified in place.
package inbox
