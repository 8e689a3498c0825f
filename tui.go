package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tereborace.com/enerxia/energy"
)

// ==== Modo TUI (Bubble Tea) ====

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	statusStyle = lipgloss.NewStyle().Italic(true)
)

type tuiModel struct {
	data    *dataset
	name    string
	list    list.Model
	view    energy.ViewSpec
	sel     energy.Selection
	years   []int
	res     *energy.Result
	input   textinput.Model
	matches []string // suxestións de país
	status  string
	focus   int // 0=list, 1=busca de país
}

func initialTUI(data *dataset, name string) tuiModel {
	views := energy.Catalogue()
	items := make([]list.Item, len(views))
	for i, v := range views {
		items[i] = viewItem{v}
	}
	l := list.New(items, list.NewDefaultDelegate(), 32, 20)
	l.Title = name
	in := textinput.New()
	in.Placeholder = "país... (/ para focar)"
	return tuiModel{
		data:  data,
		name:  name,
		list:  l,
		input: in,
		sel: energy.Selection{
			Country: data.cfg.DefaultCountry,
			Mode:    energy.ModeBoth,
			Sector:  energy.Sectors[0],
		},
	}
}

type viewItem struct{ v energy.ViewSpec }

func (i viewItem) FilterValue() string { return i.v.Title }
func (i viewItem) Title() string       { return i.v.Title }
func (i viewItem) Description() string { return i.v.Section + " · " + i.v.Unit }

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focus == 1 {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "Q":
			return m, tea.Quit
		case "/":
			m.focus = 1
			m.input.SetValue("")
			m.matches = nil
			cmd := m.input.Focus()
			return m, cmd
		case "enter":
			if it, ok := m.list.SelectedItem().(viewItem); ok {
				m.view = it.v
				return m.runView(), nil
			}
		case "N": // ano seguinte
			return m.cycleYear(1), nil
		case "P": // ano anterior
			return m.cycleYear(-1), nil
		case "M": // modo renovables / no renovables / ambas
			m.sel.Mode = cycle(energy.Modes, m.sel.Mode)
			return m.runView(), nil
		case "S": // sector
			m.sel.Sector = cycle(energy.Sectors, m.sel.Sector)
			return m.runView(), nil
		case "T": // todos os países
			m.sel.Country = "Todos"
			return m.runView(), nil
		case "E": // export CSV
			m.status = m.export("csv")
			return m, nil
		case "X": // export XLSX
			m.status = m.export("xlsx")
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width/3, msg.Height-2)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// teclas mentres se escribe o país
func (m tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.focus = 0
		m.input.Blur()
		return m, nil
	case "enter":
		country := strings.TrimSpace(m.input.Value())
		if len(m.matches) > 0 {
			country = m.matches[0]
		}
		m.sel.Country = country
		m.focus = 0
		m.input.Blur()
		return m.runView(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.matches = m.searchCountries(m.input.Value())
	return m, cmd
}

func (m tuiModel) searchCountries(q string) []string {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	src := energy.SourceElectricity
	if m.view.ID != "" {
		src = m.view.Source
	}
	table := m.data.cfg.table(src)
	if !tableExists(m.data.db, table) {
		return nil
	}
	names, err := searchCountries(m.data.db, table, q, 5)
	if err != nil {
		return nil
	}
	return names
}

// seguinte valor dunha lista (circular)
func cycle[T comparable](vals []T, cur T) T {
	i := slices.Index(vals, cur)
	return vals[(i+1)%len(vals)]
}

func (m tuiModel) cycleYear(step int) tea.Model {
	if len(m.years) == 0 {
		return m
	}
	i := slices.Index(m.years, m.sel.Year)
	if i < 0 {
		i = len(m.years) - 1
	}
	i = (i + step + len(m.years)) % len(m.years)
	m.sel.Year = m.years[i]
	return m.runView()
}

func (m tuiModel) runView() tuiModel {
	if m.view.ID == "" {
		return m
	}
	recs, err := m.data.records(m.view.Source)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.years = energy.Years(recs)
	res, err := m.data.run(m.view, m.sel)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.res = res
	m.sel.Year = res.Selection.Year
	m.status = fmt.Sprintf("%d rexistros", res.Records)
	return m
}

func (m tuiModel) View() string {
	left := lipgloss.NewStyle().Width(34).Render(m.list.View())
	b := strings.Builder{}
	if m.res == nil {
		fmt.Fprintf(&b, "%s\n\n", titleStyle.Render("Escolle unha vista [enter]"))
	} else {
		v := m.res.View
		fmt.Fprintf(&b, "%s\n", titleStyle.Render(v.Title))
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(selectionLabel(m.res)))
		fmt.Fprintf(&b, "País [/]: %s\n", m.input.View())
		if m.focus == 1 && len(m.matches) > 0 {
			fmt.Fprintf(&b, "%s\n", mutedStyle.Render("→ "+strings.Join(m.matches, ", ")))
		}
		b.WriteString("\n")
		if m.res.Empty() {
			fmt.Fprintf(&b, "%s\n", warnStyle.Render("Sen datos para a selección"))
		} else {
			fmt.Fprintf(&b, "%s\n\n", renderTable(m.res, 12))
			fmt.Fprintf(&b, "%s\n", renderBars(m.res, 15))
		}
	}
	fmt.Fprintf(&b, "[enter] abrir  [/] país  [T] todos  [N/P] ano  [M] modo  [S] sector  [E] CSV  [X] XLSX  [Q] sair\n")
	fmt.Fprintf(&b, "%s", statusStyle.Render(m.status))
	right := lipgloss.NewStyle().Width(96).PaddingLeft(2).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// táboa pivotada en texto (as últimas maxLines filas)
func renderTable(res *energy.Result, maxLines int) string {
	const w = 14
	cell := func(s string) string { return fmt.Sprintf("%-*s", w, truncate(s, w)) }

	head := tableHeader(res.Table)
	hs := make([]string, len(head))
	for i, h := range head {
		hs[i] = cell(h)
	}
	lines := []string{strings.Join(hs, " | ")}
	lines = append(lines, strings.Repeat("-", len([]rune(lines[0]))))

	rows := displayRows(res)
	if len(rows) > maxLines {
		rows = rows[len(rows)-maxLines:]
	}
	for _, r := range rows {
		cs := make([]string, len(r))
		for i, c := range r {
			cs[i] = cell(c)
		}
		lines = append(lines, strings.Join(cs, " | "))
	}
	return strings.Join(lines, "\n")
}

// barras ASCII: total por fila, ou a primeira columna nas vistas de porcentaxe
func renderBars(res *energy.Result, maxLines int) string {
	tbl := res.Table
	vals, label := tbl.RowTotals(), "total"
	if res.View.Percent && len(tbl.Columns) > 1 {
		vals, label = tbl.Column(tbl.Columns[0]), tbl.Columns[0]
	}
	labels := tbl.Rows
	if len(vals) > maxLines {
		vals, labels = vals[len(vals)-maxLines:], labels[len(labels)-maxLines:]
	}
	maxv := 0.0
	for _, v := range vals {
		maxv = math.Max(maxv, v)
	}
	if maxv <= 0 {
		return "(sen valores positivos)"
	}
	const maxBar = 40
	b := strings.Builder{}
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(label))
	for i, v := range vals {
		n := int(math.Max(0, v) / maxv * maxBar)
		fmt.Fprintf(&b, "%-18s | %-*s %s\n", truncate(labels[i], 18), maxBar, strings.Repeat("█", n), formatCell(res.View, v))
	}
	return b.String()
}

// exporta o resultado actual ao directorio de traballo
func (m tuiModel) export(ext string) string {
	fn, err := exportResultFile(m.res, ext)
	if err != nil {
		return err.Error()
	}
	return "Exportado " + fn
}

func exportResultFile(res *energy.Result, ext string) (string, error) {
	if res == nil {
		return "", errors.New("sen vista")
	}
	stem := strings.TrimSuffix(exportName(res, ext), "."+ext)
	fn := fmt.Sprintf("%s_%d.%s", stem, time.Now().Unix(), ext)

	switch ext {
	case "csv":
		f, err := os.Create(fn)
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := writeCSV(f, res); err != nil {
			return "", err
		}
		return fn, f.Close()
	case "xlsx":
		f, err := buildXLSX(res)
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := f.SaveAs(fn); err != nil {
			return "", err
		}
		return fn, nil
	}
	return "", fmt.Errorf("formato descoñecido: %s", ext)
}
