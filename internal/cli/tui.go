package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/metasystem/steering/pkg/cyber"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ObjectListModel - Interactive target selection
// =============================================================================

// ObjectListModel is the bubbletea model for picking a target object.
type ObjectListModel struct {
	Objects  []cyber.Object
	Cursor   int
	Selected *cyber.Object
	Height   int
	Offset   int
}

// NewObjectListModel creates a picker over objects.
func NewObjectListModel(objects []cyber.Object) ObjectListModel {
	return ObjectListModel{Objects: objects, Height: 15}
}

func (m ObjectListModel) Init() tea.Cmd {
	return nil
}

func (m ObjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Objects)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Objects) == 0 {
				return m, tea.Quit
			}
			obj := m.Objects[m.Cursor]
			m.Selected = &obj
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ObjectListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Target Object"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Objects))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		o := m.Objects[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			o.ID,
			o.DisplayName(),
			string(o.SystemClass),
			fmt.Sprintf("%.2f", o.EnergyParams.AvailablePower),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Class", "Power").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 3 || col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Objects))))

	return b.String()
}

// pickTarget runs the picker and returns the chosen object id, or "" when
// the user quits without choosing.
func pickTarget(objects []cyber.Object) (string, error) {
	final, err := tea.NewProgram(NewObjectListModel(objects)).Run()
	if err != nil {
		return "", fmt.Errorf("target picker: %w", err)
	}
	m, ok := final.(ObjectListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.ID, nil
}
