// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view study workflow:
//  1. Home : Browse and select songs from the catalog
//  2. Song detail : Read lyrics line by line with analysis and quick translations
//  3. Tutor : Chat with the AI tutor, optionally anchored to a song
//  4. Quiz : Answer generated comprehension questions and review results
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern,
// receiving gateway replies via typed messages. View transitions and all
// study state live in the session package; the Model only translates key
// events into session calls and renders the result.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, t, z, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
