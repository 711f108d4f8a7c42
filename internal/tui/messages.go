package tui

import "github.com/alexisbeaulieu97/faces/internal/engine"

// ViewMode determines which screen to render.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewHelp
)

// RefreshedMsg carries the outcome of a cache flush and re-realization.
type RefreshedMsg struct {
	Results []engine.RefreshResult
	Err     error
}

// ThemeReloadedMsg reports that the theme file was re-applied.
type ThemeReloadedMsg struct {
	Err error
}

// ErrorMsg shows an error banner.
type ErrorMsg struct {
	Message string
}
