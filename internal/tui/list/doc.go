// Package listview renders the visible window of a row list for Bubble Tea
// views.
//
// Only rows inside the viewport, plus a small buffer, are rendered. Rows can
// be replaced wholesale with SetItems when a new page arrives; the selection
// is clamped so it stays on a valid row.
package listview
