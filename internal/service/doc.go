// Package service contains the application services that sit between the
// HTTP handlers and the stores: settings resolution with lazy defaults and
// check-in recording with activity event publication.
package service
