package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/ghlookup/internal/tui/keymap"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
	"github.com/Iron-Ham/ghlookup/internal/util"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	st := styles.Active()
	l := CalculateLayout(m.width, m.height)

	searchPanel := m.panel(st, m.focus == FocusSearch, l.SearchWidth, SearchHeight).
		Render(m.search.View())

	listPanel := m.panel(st, m.focus == FocusList, l.ListWidth, l.MainHeight).
		Render(m.results.View())

	var right string
	if m.showHelp {
		right = m.renderHelpPanel(st)
	} else {
		right = m.detail.View()
	}
	detailPanel := m.panel(st, false, l.DetailWidth, l.MainHeight).Render(right)

	main := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, strings.Repeat(" ", PanelGap), detailPanel)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(st, l.Width),
		searchPanel,
		main,
		m.renderHelpBar(st, l.Width),
	)
}

// panel returns the border style sized to the given outer dimensions.
func (m Model) panel(st *styles.Styles, focused bool, w, h int) lipgloss.Style {
	style := st.Panel
	if focused {
		style = st.PanelFocused
	}
	return style.
		Width(max(w-2, 1)).
		Height(max(h-PanelBorderHeight, 1)).
		MaxHeight(h)
}

func (m Model) renderHeader(st *styles.Styles, width int) string {
	header := st.Title.Render(AppTitle) + "  " + st.Subtitle.Render("query: "+m.term)
	if m.selection != nil {
		header += st.Subtitle.Render("  selected: " + m.selection.Login)
	}
	return util.TruncateANSI(header, width)
}

func (m Model) renderHelpBar(st *styles.Styles, width int) string {
	var parts []string
	for _, e := range m.keys.Help(m.mode()) {
		parts = append(parts, st.HelpKey.Render(e.Keys)+" "+e.Description)
	}
	return st.HelpBar.Render(util.TruncateANSI(strings.Join(parts, "  "), width))
}

// renderHelpPanel lists the bindings of both modes.
func (m Model) renderHelpPanel(st *styles.Styles) string {
	var b strings.Builder
	b.WriteString(st.DetailHeading.Render("Keys"))

	sections := []struct {
		title string
		mode  keymap.Mode
	}{
		{"Search box", keymap.ModeSearch},
		{"Result list", keymap.ModeList},
	}
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(st.Secondary.Render(sec.title))
		for _, e := range m.keys.Help(sec.mode) {
			b.WriteString("\n  ")
			b.WriteString(st.HelpKey.Render(util.PadRightANSI(e.Keys, 12)))
			b.WriteString(e.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
