// Package tui implements the interactive repository browser and the
// styles shared with plain terminal output.
package tui
