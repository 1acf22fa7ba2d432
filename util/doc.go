// Package util provides small generic helpers shared across fleetgrid
// packages: pointer helpers, slice lookups, and JSON object shaping.
package util
