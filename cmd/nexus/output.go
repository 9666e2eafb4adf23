package main

import (
	"nexus/internal/session"
	"nexus/internal/tui/styles"
)

func successText(s string) string { return styles.Theme.Success.Render("✓ " + s) }
func errorText(s string) string   { return styles.Theme.Error.Render("✗ " + s) }
func warningText(s string) string { return styles.Theme.Warning.Render("! " + s) }
func infoText(s string) string    { return styles.Theme.Info.Render(s) }
func mutedText(s string) string   { return styles.Theme.Muted.Render(s) }

func noticeText(n session.Notice) string {
	switch n.Level {
	case session.LevelSuccess:
		return successText(n.Message)
	case session.LevelWarning:
		return warningText(n.Message)
	case session.LevelError:
		return errorText(n.Message)
	}
	return infoText(n.Message)
}
