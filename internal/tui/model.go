// Package tui is the terminal frontend for a listening session.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/lrr/internal/annotation"
	"github.com/metcalfc/lrr/internal/logging"
	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/subtitle"
)

// Exporter writes export text somewhere durable and returns its location.
type Exporter interface {
	Bookmarks(text string) (string, error)
	Words(text string) (string, error)
}

// Copier puts export text on the clipboard.
type Copier interface {
	Copy(text string) error
}

// Options configure the model.
type Options struct {
	SeekStep  time.Duration
	Exports   Exporter
	Clipboard Copier
	Logger    *logging.Logger
}

// tickMsg belongs to the tick chain started at generation gen. Messages
// from older chains are dropped.
type tickMsg struct {
	gen int
	at  time.Time
}

// Model is the bubbletea model for one session.
type Model struct {
	s    *session.Session
	opts Options

	help     help.Model
	viewport viewport.Model

	selected int  // cue under the cursor
	follow   bool // keep the cursor on the active cue

	tickGen  int
	lastTick time.Time
	now      func() time.Time

	picking bool // choosing a word from the selected cue
	word    int

	message  string
	quitting bool
	width    int
	height   int
}

// New creates a model positioned at the session's clock.
func New(s *session.Session, opts Options) Model {
	if opts.SeekStep <= 0 {
		opts.SeekStep = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	m := Model{
		s:        s,
		opts:     opts,
		help:     help.New(),
		viewport: viewport.New(80, 20),
		follow:   true,
		now:      time.Now,
		width:    80,
		height:   24,
	}
	if i := s.ActiveIndex(); i >= 0 {
		m.selected = i
	}
	if s.Restored {
		b, w := s.Annotations.Counts()
		m.message = fmt.Sprintf("Restored %d bookmarks and %d words", b, w)
	}
	return m
}

// Run drives s in the terminal until the user quits.
func Run(s *session.Session, opts Options) error {
	p := tea.NewProgram(New(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.picking {
			return m.updatePicking(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || m.s.Clock.Paused {
			return m, nil
		}
		elapsed := max(msg.at.Sub(m.lastTick), 0)
		m.lastTick = msg.at
		playing := m.s.Clock.Tick(elapsed)
		m.syncSelection()
		if playing {
			return m, tick(m.tickGen, m.s.Clock.TickInterval())
		}
		m.message = "End of subtitles"
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	clock := m.s.Clock

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Pause):
		clock.TogglePause()
		if !clock.Paused {
			m.follow = true
			return m, m.resume()
		}

	case key.Matches(msg, keys.Prev):
		m.s.PrevCue()
		m.follow = true
		m.syncSelection()

	case key.Matches(msg, keys.Next):
		m.s.NextCue()
		m.follow = true
		m.syncSelection()

	case key.Matches(msg, keys.Up):
		m.follow = false
		m.selected = max(m.selected-1, 0)

	case key.Matches(msg, keys.Down):
		m.follow = false
		m.selected = min(m.selected+1, len(m.s.Cues)-1)

	case key.Matches(msg, keys.Jump):
		m.s.SeekToCue(m.selected)
		m.follow = true
		if clock.Paused {
			clock.Play()
			return m, m.resume()
		}

	case key.Matches(msg, keys.Back):
		clock.SeekBy(-m.opts.SeekStep)
		m.syncSelection()

	case key.Matches(msg, keys.Forward):
		clock.SeekBy(m.opts.SeekStep)
		m.syncSelection()

	case key.Matches(msg, keys.Faster):
		clock.Faster()

	case key.Matches(msg, keys.Slower):
		clock.Slower()

	case key.Matches(msg, keys.Bookmark):
		if m.selected < len(m.s.Cues) {
			id := m.s.Cues[m.selected].ID
			if m.s.ToggleBookmark(m.selected) {
				m.message = "Bookmarked " + id.String()
			} else {
				m.message = "Removed bookmark " + id.String()
			}
		}

	case key.Matches(msg, keys.Words):
		if len(m.s.Words(m.selected)) > 0 {
			m.picking = true
			m.word = 0
			m.message = ""
		}

	case key.Matches(msg, keys.Export):
		m.message = m.export("bookmarks", m.s.ExportBookmarks, m.exportBookmarks)

	case key.Matches(msg, keys.ExportWord):
		m.message = m.export("words", m.s.ExportWords, m.exportWords)

	case key.Matches(msg, keys.Copy):
		m.message = m.export("bookmarks", m.s.ExportBookmarks, m.copyText)

	case key.Matches(msg, keys.CopyWords):
		m.message = m.export("words", m.s.ExportWords, m.copyText)

	case key.Matches(msg, keys.Save):
		if err := m.s.Save(); err != nil {
			m.message = "Could not save session: " + err.Error()
		} else {
			m.message = "Session saved"
		}

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	words := m.s.Words(m.selected)
	if len(words) == 0 {
		m.picking = false
		return m, nil
	}
	m.word = min(m.word, len(words)-1)

	switch {
	case key.Matches(msg, keys.Quit) && msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, wordKeys.Done):
		m.picking = false
		m.message = ""

	case key.Matches(msg, wordKeys.Prev):
		m.word = max(m.word-1, 0)

	case key.Matches(msg, wordKeys.Next):
		m.word = min(m.word+1, len(words)-1)

	case key.Matches(msg, wordKeys.Save):
		w := annotation.NormalizeWord(words[m.word])
		switch {
		case w == "":
			m.message = "Not a word: " + words[m.word]
		case m.s.ToggleWord(w):
			m.message = "Saved " + w
		default:
			m.message = "Removed " + w
		}

	case key.Matches(msg, wordKeys.Define):
		w := annotation.NormalizeWord(words[m.word])
		if def, ok := m.s.Define(w); ok {
			m.message = w + ": " + def
		} else {
			m.message = "No definition for " + w
		}
	}

	return m, nil
}

// syncSelection moves the cursor to the active cue when following.
func (m *Model) syncSelection() {
	if !m.follow {
		return
	}
	if i := m.s.ActiveIndex(); i >= 0 {
		m.selected = i
	}
}

func (m Model) export(what string, text func() (string, error), deliver func(string) (string, error)) string {
	out, err := text()
	if errors.Is(err, annotation.ErrEmptyExport) {
		return "No " + what + " to export"
	}
	if err != nil {
		return err.Error()
	}
	msg, err := deliver(out)
	if err != nil {
		m.opts.Logger.Warnw("Export failed", "what", what, "error", err)
		return fmt.Sprintf("Could not export %s: %v", what, err)
	}
	return msg
}

func (m Model) exportBookmarks(text string) (string, error) {
	if m.opts.Exports == nil {
		return "", errors.New("no export directory")
	}
	path, err := m.opts.Exports.Bookmarks(text)
	return "Exported bookmarks to " + path, err
}

func (m Model) exportWords(text string) (string, error) {
	if m.opts.Exports == nil {
		return "", errors.New("no export directory")
	}
	path, err := m.opts.Exports.Words(text)
	return "Exported words to " + path, err
}

func (m Model) copyText(text string) (string, error) {
	if m.opts.Clipboard == nil {
		return "", errors.New("no clipboard")
	}
	return "Copied to clipboard", m.opts.Clipboard.Copy(text)
}

func (m Model) View() string {
	if m.quitting {
		if m.s.Clock.AtEnd() {
			return completeStyle.Render("\n  Listening complete!\n")
		}
		return ""
	}

	if len(m.s.Cues) == 0 {
		return "No subtitles to show."
	}

	var sb strings.Builder
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")

	footer := m.footer()
	vp := m.viewport
	vp.Width = m.width
	vp.Height = max(m.height-2-lipgloss.Height(footer), 1)
	vp.SetContent(m.renderCues())
	vp.SetYOffset(m.selected - vp.Height/2)

	sb.WriteString(vp.View())
	sb.WriteString("\n")
	sb.WriteString(footer)
	return sb.String()
}

func (m Model) statusLine() string {
	clock := m.s.Clock
	pause := ""
	if clock.Paused {
		pause = pausedStyle.Render(" [PAUSED]")
	}
	bookmarks, words := m.s.Annotations.Counts()
	return statusStyle.Render(fmt.Sprintf("%s | %s / %s | %.2gx | %d bookmarks | %d words%s",
		m.s.Name(),
		clockTime(clock.Position),
		clockTime(clock.Duration),
		clock.Rate,
		bookmarks,
		words,
		pause,
	))
}

func (m Model) renderCues() string {
	active := m.s.ActiveIndex()
	lines := make([]string, len(m.s.Cues))
	for i, c := range m.s.Cues {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := " "
		if m.s.Annotations.IsBookmarked(c.ID) {
			mark = bookmarkStyle.Render("*")
		}

		text := cueStyle.Render(c.Text)
		if i == active {
			text = activeStyle.Render(c.Text)
		}
		if m.picking && i == m.selected {
			text = m.renderWords(i)
		}
		lines[i] = fmt.Sprintf("%s%s %s %s", cursor, mark, idStyle.Render(fmt.Sprintf("%-6s", c.ID)), text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWords(i int) string {
	words := m.s.Words(i)
	out := make([]string, len(words))
	for j, w := range words {
		style := wordStyle
		if m.s.Annotations.IsSavedWord(w) {
			style = savedWordStyle
		}
		if j == m.word {
			style = wordCursorStyle
		}
		out[j] = style.Render(w)
	}
	return strings.Join(out, " ")
}

func (m Model) footer() string {
	var sb strings.Builder
	if m.message != "" {
		sb.WriteString(messageStyle.Render(m.message))
		sb.WriteString("\n")
	}
	if m.picking {
		sb.WriteString(m.help.View(wordKeyMap{}))
	} else {
		sb.WriteString(m.help.View(keys))
	}
	return sb.String()
}

// Selected returns the index of the cue under the cursor.
func (m Model) Selected() int { return m.selected }

// Message returns the last status message.
func (m Model) Message() string { return m.message }

func clockTime(d time.Duration) string {
	hms, _, _ := strings.Cut(subtitle.FormatTimestamp(d), ",")
	return hms
}

// resume starts a new tick chain, retiring any chain still in flight.
func (m *Model) resume() tea.Cmd {
	m.tickGen++
	m.lastTick = m.now()
	return tick(m.tickGen, m.s.Clock.TickInterval())
}

func tick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}
