package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	knotio "github.com/matzehuels/turkshead/pkg/io"
	"github.com/matzehuels/turkshead/pkg/knot/factory"
	"github.com/matzehuels/turkshead/pkg/pipeline"
	"github.com/matzehuels/turkshead/pkg/render"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// KnotListModel - Interactive knot selection
// =============================================================================

// KnotListModel is the bubbletea model for picking one knot of a layer search.
type KnotListModel struct {
	Knots    []factory.Found
	Cursor   int
	Selected *factory.Found
	Height   int
	Offset   int

	preview string
}

// NewKnotListModel creates a new knot list model.
func NewKnotListModel(knots []factory.Found) KnotListModel {
	m := KnotListModel{Knots: knots, Height: 10}
	m.preview = m.previewAt(0)
	return m
}

// previewAt draws knot i with its strands, or just its pivots when it cannot
// be analyzed.
func (m KnotListModel) previewAt(i int) string {
	if i < 0 || i >= len(m.Knots) {
		return ""
	}
	k := m.Knots[i].Knot
	a, err := pipeline.Analyze("", k)
	if err != nil {
		return render.Preview(k, nil, nil)
	}
	return render.Preview(k, a.Strands, a.Crossings)
}

func (m KnotListModel) Init() tea.Cmd {
	return nil
}

func (m KnotListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
				m.preview = m.previewAt(m.Cursor)
			}
		case "down", "j":
			if m.Cursor < len(m.Knots)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
				m.preview = m.previewAt(m.Cursor)
			}
		case "enter":
			if len(m.Knots) == 0 {
				return m, tea.Quit
			}
			m.Selected = &m.Knots[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/2-6, 3)
	}
	return m, nil
}

func (m KnotListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Knot"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Knots))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Knots[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(i + 1),
			fmt.Sprint(f.Knot.Len()),
			fmt.Sprint(f.Strands),
			f.Knot.Key(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Pivots", "Strands", "Key").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if idx < len(m.Knots) && m.Knots[idx].Strands == 1 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.preview != "" {
		b.WriteString(stylePreview.Render(m.preview))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Knots))))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command for picking a synthesized knot.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		search  searchOpts
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse [layers]",
		Short: "Browse the knots of a layer search interactively",
		Long: `Browse the knots of a layer search interactively.

Runs the same search as synth, then lists the knots found with a live text
preview. The selected knot is analyzed and printed; with --output its
analysis is also written as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := factory.ParseLayers(args[0])
			if err != nil {
				return err
			}
			opts := pipeline.Options{Layers: layers}
			search.apply(&opts)
			return c.runBrowse(cmd.Context(), opts, output, noCache)
		},
	}

	search.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the selected knot's analysis to this JSON file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	built, _, err := runner.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	prog.done("Synthesized knots", "layers", opts.Layers, "found", len(built.Synthesis.Knots))

	final, err := tea.NewProgram(NewKnotListModel(built.Synthesis.Knots), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	m := final.(KnotListModel)
	if m.Selected == nil {
		printInfo("No knot selected")
		return nil
	}

	a, err := pipeline.Analyze(fmt.Sprintf("%s#%d", opts.Layers.Sorted(), m.Cursor+1), m.Selected.Knot)
	if err != nil {
		return err
	}
	res := &pipeline.Result{Knots: []pipeline.KnotResult{{
		Analysis:  a,
		Artifacts: map[string][]byte{pipeline.FormatTXT: []byte(render.Preview(a.Knot, a.Strands, a.Crossings))},
	}}}
	printSummary(res, true)

	if output != "" {
		if err := knotio.ExportJSON(a.Doc(), output); err != nil {
			return err
		}
		printFile(output)
	}
	return nil
}
