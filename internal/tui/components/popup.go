package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"codepad/internal/suggest"
)

const maxPopupRows = 8

var kindIcons = map[suggest.Kind]string{
	suggest.KindTag:          "<>",
	suggest.KindAttribute:    "=",
	suggest.KindProperty:     ":",
	suggest.KindKeyword:      "k",
	suggest.KindSelector:     "#",
	suggest.KindSnippet:      "{}",
	suggest.KindAbbreviation: "ab",
	suggest.KindFilePath:     "/",
	suggest.KindCompletion:   "✦",
}

// PopupComponent renders the suggestion list anchored at the caret.
type PopupComponent struct {
	items    []suggest.Suggestion
	selected int
	rows     int
	width    int
}

// NewPopupComponent sizes the popup for items, at most maxWidth columns wide.
func NewPopupComponent(popup suggest.Popup, maxWidth int) PopupComponent {
	rows := min(len(popup.Items), maxPopupRows)

	width := 0
	for _, item := range popup.Items {
		w := 3 + runewidth.StringWidth(item.Label)
		if item.Detail != "" {
			w += 2 + runewidth.StringWidth(item.Detail)
		}
		width = max(width, w)
	}
	width = min(width+2, maxWidth)

	return PopupComponent{
		items:    popup.Items,
		selected: popup.Selected,
		rows:     rows,
		width:    max(width, 10),
	}
}

// Lines renders the bordered popup, one string per screen row.
func (c PopupComponent) Lines() []string {
	if len(c.items) == 0 {
		return nil
	}

	start := 0
	if c.selected >= c.rows {
		start = c.selected - c.rows + 1
	}
	end := min(start+c.rows, len(c.items))

	inner := c.width - 2
	border := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	normal := lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("252"))
	active := lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231"))
	detail := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	if c.items[start].Kind == suggest.KindCompletion {
		normal = normal.Italic(true)
	}

	lines := []string{border.Render("┌" + strings.Repeat("─", inner) + "┐")}
	for i := start; i < end; i++ {
		item := c.items[i]
		icon := fmt.Sprintf("%-2s", kindIcons[item.Kind])
		text := runewidth.Truncate(icon+" "+item.Label, inner, "…")
		pad := inner - runewidth.StringWidth(text)
		var right string
		if item.Detail != "" && pad > runewidth.StringWidth(item.Detail)+1 {
			right = item.Detail
			pad -= runewidth.StringWidth(right)
		}

		style := normal
		if i == c.selected {
			style = active
		}
		row := style.Render(text+strings.Repeat(" ", pad)) + detail.Inherit(style).Render(right)
		lines = append(lines, border.Render("│")+row+border.Render("│"))
	}
	lines = append(lines, border.Render("└"+strings.Repeat("─", inner)+"┘"))
	return lines
}

// Height is the number of rows Lines returns.
func (c PopupComponent) Height() int {
	if len(c.items) == 0 {
		return 0
	}
	return c.rows + 2
}

func (c PopupComponent) Width() int {
	return c.width
}
