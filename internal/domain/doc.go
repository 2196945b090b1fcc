// Package domain defines the core business entities of the planwatch
// service: study plans, their owners, recorded check-ins, and per-user
// reminder settings. Entities validate themselves; persistence and
// scheduling concerns live elsewhere.
package domain
