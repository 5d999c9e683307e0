//go:build gui

package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/metcalfc/lrr/internal/annotation"
	"github.com/metcalfc/lrr/internal/cli"
	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/subtitle"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func runWindow(s *session.Session, env cli.Env) error {
	a := app.New()
	w := a.NewWindow("lrr - " + s.Name())

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter
	messageLabel := widget.NewLabel("")
	messageLabel.Wrapping = fyne.TextWrapWord
	controlsLabel := widget.NewLabel("SPACE: pause  ←/→: sentence  ↑/↓: speed  B: bookmark  S: save  F: fullscreen  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	active := -1
	var seeking bool

	list := widget.NewList(
		func() int { return len(s.Cues) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, widget.NewLabel("0000.00"), nil, widget.NewLabel("Sentence"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			c := s.Cues[id]
			row := obj.(*fyne.Container)
			text := row.Objects[0].(*widget.Label)
			idLabel := row.Objects[1].(*widget.Label)

			mark := "  "
			if s.Annotations.IsBookmarked(c.ID) {
				mark = "* "
			}
			idLabel.SetText(mark + c.ID.String())
			text.TextStyle.Bold = id == active
			text.SetText(c.Text)
		},
	)

	words := widget.NewSelect(nil, nil)
	words.PlaceHolder = "Pick a word"

	updateDisplay := func() {
		if i := s.ActiveIndex(); i != active {
			active = i
			list.Refresh()
			if i >= 0 {
				list.ScrollTo(i)
				words.Options = s.Words(i)
				words.ClearSelected()
			}
		}

		pause := ""
		if s.Clock.Paused {
			pause = " [PAUSED]"
		}
		b, n := s.Annotations.Counts()
		statusLabel.SetText(fmt.Sprintf("%s / %s | %.2gx | %d bookmarks | %d words%s",
			subtitle.FormatTimestamp(s.Clock.Position),
			subtitle.FormatTimestamp(s.Clock.Duration),
			s.Clock.Rate, b, n, pause))
	}

	list.OnSelected = func(id widget.ListItemID) {
		if seeking {
			return
		}
		seeking = true
		s.SeekToCue(id)
		s.Clock.Play()
		list.Unselect(id)
		seeking = false
		updateDisplay()
	}

	toggleBookmark := func() {
		if active < 0 {
			return
		}
		if s.ToggleBookmark(active) {
			messageLabel.SetText("Bookmarked " + s.Cues[active].ID.String())
		} else {
			messageLabel.SetText("Removed bookmark " + s.Cues[active].ID.String())
		}
		list.Refresh()
		updateDisplay()
	}

	saveWord := widget.NewButton("Save word", func() {
		word := annotation.NormalizeWord(words.Selected)
		if word == "" {
			return
		}
		msg := "Removed " + word
		if s.ToggleWord(word) {
			msg = "Saved " + word
		}
		if def, ok := s.Define(word); ok {
			msg += " (" + def + ")"
		}
		messageLabel.SetText(msg)
		updateDisplay()
	})

	exportWith := func(what string, text func() (string, error), write func(string) (string, error)) {
		out, err := text()
		if errors.Is(err, annotation.ErrEmptyExport) {
			messageLabel.SetText("No " + what + " to export")
			return
		}
		path, err := write(out)
		if err != nil {
			env.Logger.Warnw("Export failed", "what", what, "error", err)
			messageLabel.SetText(fmt.Sprintf("Could not export %s: %v", what, err))
			return
		}
		messageLabel.SetText("Exported " + what + " to " + path)
	}

	save := func() {
		if err := s.Save(); err != nil {
			messageLabel.SetText("Could not save session: " + err.Error())
			return
		}
		messageLabel.SetText("Session saved")
	}

	toolbar := container.NewHBox(
		widget.NewButton("Play/Pause", func() { s.Clock.TogglePause(); updateDisplay() }),
		widget.NewButton("Prev", func() { s.PrevCue(); updateDisplay() }),
		widget.NewButton("Next", func() { s.NextCue(); updateDisplay() }),
		widget.NewButton("Bookmark", toggleBookmark),
		words,
		saveWord,
		widget.NewButton("Export bookmarks", func() {
			exportWith("bookmarks", s.ExportBookmarks, env.Exports.Bookmarks)
		}),
		widget.NewButton("Export words", func() {
			exportWith("words", s.ExportWords, env.Exports.Words)
		}),
		widget.NewButton("Copy bookmarks", func() {
			exportWith("bookmarks", s.ExportBookmarks, func(text string) (string, error) {
				return "clipboard", env.Clipboard.Copy(text)
			})
		}),
	)

	content := container.NewBorder(
		container.NewVBox(statusLabel, toolbar),
		container.NewVBox(messageLabel, controlsLabel),
		nil, nil,
		list,
	)

	ticker := time.NewTicker(s.Clock.TickInterval())
	done := make(chan bool)
	var closeOnce sync.Once
	stop := func() {
		closeOnce.Do(func() {
			ticker.Stop()
			close(done)
		})
	}

	go func() {
		last := time.Now()
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				elapsed := now.Sub(last)
				last = now
				fyne.Do(func() {
					if s.Clock.Tick(elapsed) || s.Clock.AtEnd() {
						updateDisplay()
					}
				})
			}
		}
	}()

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeySpace:
			s.Clock.TogglePause()
		case fyne.KeyLeft:
			s.PrevCue()
		case fyne.KeyRight:
			s.NextCue()
		case fyne.KeyUp:
			s.Clock.Faster()
		case fyne.KeyDown:
			s.Clock.Slower()
		case fyne.KeyB:
			toggleBookmark()
		case fyne.KeyS:
			save()
		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())
		case fyne.KeyQ:
			stop()
			a.Quit()
		}
		updateDisplay()
	})

	w.SetOnClosed(stop)
	w.Resize(fyne.NewSize(900, 600))
	w.SetContent(content)

	if s.Restored {
		b, n := s.Annotations.Counts()
		messageLabel.SetText(fmt.Sprintf("Restored %d bookmarks and %d words", b, n))
	}
	updateDisplay()

	w.ShowAndRun()
	return nil
}

func main() {
	build := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(build, runWindow); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
