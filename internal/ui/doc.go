// Package ui implements the interactive configuration console: a full-screen
// terminal application with one tab per configuration section. Each tab is a
// form backed by a section controller; edits are diffed against the server
// baseline, the save action is gated on that diff, and a debounced status
// indicator reports connectivity without strobing during saves.
package ui
