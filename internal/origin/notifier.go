// Package origin pushes publish-state changes back to the note store the
// export came from, so re-published notes stop being re-flagged.
package origin

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Notification modes.
const (
	ModeAppleNotes = "apple-notes"
	ModeDisabled   = "disabled"
)

// Notifier marks notes as published in the originating store.
type Notifier interface {
	// MarkPublished replaces the "ready to publish" marker with the
	// "already published" marker on every note matching one of titles.
	MarkPublished(ctx context.Context, titles []string) error
}

// ForMode returns the Notifier for a configured mode.
func ForMode(mode string) Notifier {
	if mode == ModeAppleNotes {
		return AppleNotes{}
	}
	return Nop{}
}

// Nop ignores notifications. Used when no origin store is configured.
type Nop struct{}

func (Nop) MarkPublished(context.Context, []string) error { return nil }

// AppleNotes rewrites the #publish marker to #published on matching notes
// in Apple Notes via osascript. Titles are passed as argv; the script is
// fed on stdin.
type AppleNotes struct{}

func (AppleNotes) MarkPublished(ctx context.Context, titles []string) error {
	if len(titles) == 0 {
		return nil
	}
	args := append([]string{"-"}, titles...)
	cmd := exec.CommandContext(ctx, "osascript", args...)
	cmd.Stdin = strings.NewReader(markPublishedScript)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("origin: osascript: %w\n%s", err, out)
	}
	return nil
}

const markPublishedScript = `
on run argv
  set targetTitles to argv
  set updatedCount to 0
  tell application "Notes"
    repeat with acc in accounts
      repeat with fold in folders of acc
        repeat with n in notes of fold
          set noteName to name of n
          if targetTitles contains noteName then
            set noteBody to body of n
            if noteBody contains "#publish" then
              set body of n to my replace_text(noteBody, "#publish", "#published")
              set updatedCount to updatedCount + 1
            end if
          end if
        end repeat
      end repeat
    end repeat
  end tell
  return updatedCount
end run

on replace_text(theText, searchString, replaceString)
  set AppleScript's text item delimiters to searchString
  set theItems to every text item of theText
  set AppleScript's text item delimiters to replaceString
  set theText to theItems as string
  set AppleScript's text item delimiters to ""
  return theText
end replace_text
`
