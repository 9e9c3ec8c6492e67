package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders knot names and screen headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleHighlight renders layer lists and other inline emphasis.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleLink renders the address printed by serve.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders field values and file paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(8)
	styleOneStrand   = lipgloss.NewStyle().Foreground(colorGreen)
	styleSeparator   = StyleDim.Render(" · ")

	stylePreview = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// statusKind selects the icon of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusNote
)

var statusIcons = map[statusKind]string{
	statusOK:   lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	statusFail: lipgloss.NewStyle().Foreground(colorRed).Render("✗"),
	statusWarn: lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	statusNote: lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

func printStatus(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Println(statusIcons[kind] + " " + msg)
}

func printSuccess(format string, args ...any) { printStatus(statusOK, format, args...) }
func printError(format string, args ...any)   { printStatus(statusFail, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusNote, format, args...) }

// printDetail prints an indented muted line below a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// knotCard is the terminal summary of one analyzed knot.
type knotCard struct {
	name      string
	key       string
	period    int
	height    int
	pivots    int
	strands   int
	crossings int
	cached    bool
	preview   string
}

// render lays the card out as a title, labeled fields, a counts line and an
// optional bordered preview.
func (c knotCard) render() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(c.name) + "\n")
	for _, f := range [][2]string{
		{"key", c.key},
		{"period", fmt.Sprint(c.period)},
		{"height", fmt.Sprint(c.height)},
	} {
		b.WriteString(styleLabel.Render(f[0]) + " " + StyleValue.Render(f[1]) + "\n")
	}
	b.WriteString("  " + c.counts() + "\n")
	if p := strings.TrimRight(c.preview, "\n"); p != "" {
		b.WriteString(stylePreview.Render(p) + "\n")
	}
	return b.String()
}

// counts renders "6 pivots · 1 strand · 3 crossings · fresh". A single strand
// is highlighted since it means the knot is tied with one cord.
func (c knotCard) counts() string {
	strands := StyleDim.Render(plural(c.strands, "strand"))
	if c.strands == 1 {
		strands = styleOneStrand.Render(plural(c.strands, "strand"))
	}
	origin := StyleDim.Render("fresh")
	if c.cached {
		origin = styleOneStrand.Render("cached")
	}
	return strings.Join([]string{
		StyleDim.Render(plural(c.pivots, "pivot")),
		strands,
		StyleDim.Render(plural(c.crossings, "crossing")),
		origin,
	}, styleSeparator)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
