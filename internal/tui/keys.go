package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	Prev       key.Binding
	Next       key.Binding
	Up         key.Binding
	Down       key.Binding
	Jump       key.Binding
	Back       key.Binding
	Forward    key.Binding
	Faster     key.Binding
	Slower     key.Binding
	Bookmark   key.Binding
	Words      key.Binding
	Export     key.Binding
	ExportWord key.Binding
	Copy       key.Binding
	CopyWords  key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/play"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev sentence"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next sentence"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "select up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "select down"),
	),
	Jump: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play selected"),
	),
	Back: key.NewBinding(
		key.WithKeys(","),
		key.WithHelp(",", "seek back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "seek forward"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "slower"),
	),
	Bookmark: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bookmark"),
	),
	Words: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "pick words"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export bookmarks"),
	),
	ExportWord: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export words"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy bookmarks"),
	),
	CopyWords: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "copy words"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// word picking reuses some bindings with different meanings
var wordKeys = struct {
	Prev, Next, Save, Define, Done key.Binding
}{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev word"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next word"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter", "w"),
		key.WithHelp("enter", "save word"),
	),
	Define: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "define"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Prev, k.Next, k.Bookmark, k.Words, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Prev, k.Next, k.Up, k.Down, k.Jump},
		{k.Back, k.Forward, k.Faster, k.Slower},
		{k.Bookmark, k.Words, k.Export, k.ExportWord, k.Copy, k.CopyWords},
		{k.Save, k.Help, k.Quit},
	}
}

type wordKeyMap struct{}

func (wordKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{wordKeys.Prev, wordKeys.Next, wordKeys.Save, wordKeys.Define, wordKeys.Done}
}

func (w wordKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{w.ShortHelp()}
}
