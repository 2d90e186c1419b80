// Package models defines the records exchanged with the Runnio API and kept
// in the local session: the authenticated Identity and its Role, events,
// registrations and results.
package models
