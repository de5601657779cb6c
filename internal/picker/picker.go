// Package picker acquires the input document path, either from the command
// line or from an interactive terminal file picker.
package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ppiankov/vocabgen/internal/model"
)

// Source yields the path of the document to process
type Source interface {
	InputPath(ctx context.Context) (string, error)
}

// Static is a path supplied up front, e.g. a command-line argument
type Static string

// InputPath returns the path, or ErrNoInput when it is empty
func (s Static) InputPath(_ context.Context) (string, error) {
	path := strings.TrimSpace(string(s))
	if path == "" {
		return "", model.ErrNoInput
	}
	return path, nil
}

// AllowedTypes are the extensions offered by the interactive picker
var AllowedTypes = []string{".docx", ".xlsx", ".txt"}

// Interactive shows a terminal file picker rooted at Dir
type Interactive struct {
	Dir    string
	Input  io.Reader
	Output io.Writer
}

// NewInteractive creates a picker rooted at dir (the working directory when empty)
func NewInteractive(dir string) *Interactive {
	return &Interactive{Dir: dir, Input: os.Stdin, Output: os.Stderr}
}

// InputPath runs the picker until a file is chosen or the operator quits
func (p *Interactive) InputPath(ctx context.Context) (string, error) {
	if f, ok := p.Input.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("%w: stdin is not a terminal, pass the input path as an argument", model.ErrNoInput)
	}

	dir := p.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	program := tea.NewProgram(newModel(dir),
		tea.WithContext(ctx),
		tea.WithInput(p.Input),
		tea.WithOutput(p.Output),
	)

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("file picker: %w", err)
	}

	m, ok := final.(*pickerModel)
	if !ok || m.selected == "" {
		return "", model.ErrNoInput
	}
	return m.selected, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type pickerModel struct {
	files    filepicker.Model
	selected string
	quitting bool
}

func newModel(dir string) *pickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = AllowedTypes
	fp.CurrentDirectory = dir
	fp.AutoHeight = true
	return &pickerModel{files: fp}
}

func (m *pickerModel) Init() tea.Cmd {
	return m.files.Init()
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)

	if ok, path := m.files.DidSelectFile(msg); ok {
		m.selected = path
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m *pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select the vocabulary document"))
	b.WriteString("\n\n")
	b.WriteString(m.files.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[enter] Select  [esc/q] Cancel"))
	b.WriteString("\n")
	return b.String()
}
