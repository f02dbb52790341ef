package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/resource"
	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

// AllCategories is the filter entry that clears the category.
const AllCategories = "All Categories"

// stateChangedMsg reports that a subscribed list published a new state.
type stateChangedMsg struct{}

// Options - настройки модели списка.
type Options struct {
	// Title is shown above the list.
	Title string
	// Label names the items: "Loading products...", "No products found".
	Label  string
	Styles *Styles
}

// ============================================
// Model
// ============================================

// ProductListModel renders a resource.List in one of four views and maps
// keys to list controls:
//
//	n / →  next page      r  refetch
//	p / ←  previous page  c  next category (with a category filter)
//	q      quit
type ProductListModel[T any] struct {
	ctx        context.Context
	list       *resource.List[T]
	card       CardFunc[T]
	categories *resource.List[dtos.Category]

	title   string
	label   string
	styles  Styles
	spinner spinner.Model

	state    resource.State[T]
	catState resource.State[dtos.Category]
	category string

	changes     chan struct{}
	unsubscribe []func()
	ticking     bool
	width       int
	quitting    bool
}

// NewProductListModel creates a model over list. Items are rendered with card.
func NewProductListModel[T any](ctx context.Context, list *resource.List[T], card CardFunc[T], opts Options) *ProductListModel[T] {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	label := opts.Label
	if label == "" {
		label = resource.LabelProducts
	}
	title := opts.Title
	if title == "" {
		title = "Products"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := &ProductListModel[T]{
		ctx:     ctx,
		list:    list,
		card:    card,
		title:   title,
		label:   label,
		styles:  styles,
		spinner: sp,
		changes: make(chan struct{}, 1),
		state:   list.State(),
	}
	m.unsubscribe = append(m.unsubscribe, list.Subscribe(func(resource.State[T]) { m.notify() }))
	return m
}

// WithCategories adds the category filter. Selecting an entry sets the list's
// category id, "" for all categories.
func (m *ProductListModel[T]) WithCategories(categories *resource.List[dtos.Category]) *ProductListModel[T] {
	m.categories = categories
	m.catState = categories.State()
	m.unsubscribe = append(m.unsubscribe, categories.Subscribe(func(resource.State[dtos.Category]) { m.notify() }))
	return m
}

// NewProductsV1Model creates the v1 product list view.
func NewProductsV1Model(ctx context.Context, list *resource.List[dtos.Product], opts Options) *ProductListModel[dtos.Product] {
	if opts.Title == "" {
		opts.Title = "Products (v1)"
	}
	return NewProductListModel(ctx, list, ProductCard, opts)
}

// NewProductsV2Model creates the v2 product list view.
func NewProductsV2Model(ctx context.Context, list *resource.List[dtos.ProductV2], opts Options) *ProductListModel[dtos.ProductV2] {
	if opts.Title == "" {
		opts.Title = "Products (v2)"
	}
	return NewProductListModel(ctx, list, ProductV2Card, opts)
}

// NewProductsV3Model creates the v3 product list view with the category filter.
func NewProductsV3Model(ctx context.Context, list *resource.List[dtos.ProductV3], categories *resource.List[dtos.Category], opts Options) *ProductListModel[dtos.ProductV3] {
	if opts.Title == "" {
		opts.Title = "Products (v3)"
	}
	m := NewProductListModel(ctx, list, ProductV3Card, opts)
	if categories != nil {
		m.WithCategories(categories)
	}
	return m
}

// notify never blocks: one pending signal is enough, Update reads the latest state.
func (m *ProductListModel[T]) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *ProductListModel[T]) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Close drops the list subscriptions. The lists themselves stay open.
func (m *ProductListModel[T]) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.unsubscribe = nil
}

// SetSize sets the terminal width used for the card grid.
func (m *ProductListModel[T]) SetSize(width, _ int) {
	m.width = width
}

// ============================================
// tea.Model
// ============================================

// Init mounts the lists and starts listening for their state.
func (m *ProductListModel[T]) Init() tea.Cmd {
	mount := func() tea.Msg {
		m.list.Mount(m.ctx)
		if m.categories != nil {
			m.categories.Mount(m.ctx)
		}
		return stateChangedMsg{}
	}
	m.ticking = true
	return tea.Batch(m.spinner.Tick, mount, m.waitForChange())
}

// Update handles keys, list state changes and spinner ticks.
func (m *ProductListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateChangedMsg:
		return m, tea.Batch(m.refresh(), m.waitForChange())

	case spinner.TickMsg:
		if !m.state.Loading {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProductListModel[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case "n", "right":
		m.list.NextPage()
	case "p", "left":
		m.list.PrevPage()
	case "r":
		m.list.Refetch()
		if m.categories != nil && m.catState.Error != "" {
			m.categories.Refetch()
		}
	case "c":
		if !m.cycleCategory() {
			return m, nil
		}
	default:
		return m, nil
	}
	return m, m.refresh()
}

// refresh reads the latest snapshots and restarts the spinner when a new
// fetch cycle began.
func (m *ProductListModel[T]) refresh() tea.Cmd {
	m.state = m.list.State()
	if m.categories != nil {
		m.catState = m.categories.State()
		if m.category != "" && !m.catState.Loading && m.catState.Error == "" && m.categoryIndex() < 0 {
			// the selected category is gone
			m.category = ""
			m.list.SetCategory("")
			m.state = m.list.State()
		}
	}
	if m.state.Loading && !m.ticking {
		m.ticking = true
		return m.spinner.Tick
	}
	return nil
}

// cycleCategory moves to the next filter entry: All → first → ... → last → All.
func (m *ProductListModel[T]) cycleCategory() bool {
	if m.categories == nil || !m.filterReady() {
		return false
	}
	items := m.catState.Items
	next := ""
	if i := m.categoryIndex(); i+1 < len(items) {
		next = items[i+1].ID
	}
	m.category = next
	return m.list.SetCategory(next)
}

func (m *ProductListModel[T]) categoryIndex() int {
	for i, c := range m.catState.Items {
		if c.ID == m.category {
			return i
		}
	}
	return -1
}

func (m *ProductListModel[T]) filterReady() bool {
	return !m.catState.Loading && m.catState.Error == "" && m.catState.Generation > 0
}

// SelectedCategory returns the id of the filter entry, "" for all.
func (m *ProductListModel[T]) SelectedCategory() string {
	return m.category
}

// State returns the snapshot the model renders.
func (m *ProductListModel[T]) State() resource.State[T] {
	return m.state
}

// ============================================
// Rendering
// ============================================

// View renders the header, the current view state and the footer.
func (m *ProductListModel[T]) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.styles.Header.Render(m.title)}
	if filter := m.renderFilter(); filter != "" {
		sections = append(sections, filter)
	}

	switch resource.ViewOf(m.state) {
	case resource.ViewLoading:
		sections = append(sections, fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.label))
	case resource.ViewError:
		sections = append(sections, m.styles.Error.Render("Error: "+m.state.Error+"\n"+"press r to retry"))
	case resource.ViewEmpty:
		sections = append(sections, m.styles.Muted.Render("No "+m.label+" found"))
	case resource.ViewPopulated:
		sections = append(sections, m.renderGrid(), m.renderPagination())
	}

	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n") + "\n"
}

// renderFilter is hidden when categories failed to load.
func (m *ProductListModel[T]) renderFilter() string {
	if m.categories == nil || m.catState.Error != "" {
		return ""
	}
	if !m.filterReady() {
		return m.styles.Filter.Render("Category: Loading...")
	}

	entries := make([]string, 0, len(m.catState.Items)+1)
	entries = append(entries, m.filterEntry(AllCategories, m.category == ""))
	for _, c := range m.catState.Items {
		entries = append(entries, m.filterEntry(c.Name, c.ID == m.category))
	}
	return m.styles.Filter.Render("Category: ") + strings.Join(entries, " ")
}

func (m *ProductListModel[T]) filterEntry(name string, selected bool) string {
	if selected {
		return m.styles.Selected.Render("[" + name + "]")
	}
	return m.styles.Filter.Render(name)
}

// renderGrid lays the cards out in as many columns as the width allows.
func (m *ProductListModel[T]) renderGrid() string {
	cards := make([]string, len(m.state.Items))
	for i, item := range m.state.Items {
		cards[i] = m.card(item, m.styles)
	}

	cols := 1
	if w := lipgloss.Width(cards[0]); m.width > 0 && w > 0 {
		cols = max(1, m.width/(w+1))
	}

	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := make([]string, 0, 2*(end-start))
		for i, c := range cards[start:end] {
			if i > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderPagination: "Showing 1-12 of 14" and, with more than one page,
// "Page 1 of 2" plus the page numbers around the current one.
func (m *ProductListModel[T]) renderPagination() string {
	pg := m.state.Pagination
	if pg == nil {
		return ""
	}

	lines := []string{pagination.FormatInfo(pg.Page, pg.Size, pg.TotalElements)}
	if pagination.ShouldShow(pg.TotalPages) {
		pages := pagination.PageRange(pg.Page, pg.TotalPages, pagination.DefaultMaxVisible)
		nums := make([]string, len(pages))
		for i, p := range pages {
			if p == pg.Page {
				nums[i] = m.styles.Selected.Render(fmt.Sprintf("[%d]", p+1))
			} else {
				nums[i] = fmt.Sprint(p + 1)
			}
		}
		lines = append(lines, pagination.FormatPage(pg.Page, pg.TotalPages)+"  "+strings.Join(nums, " "))
	}
	return m.styles.Footer.Render(strings.Join(lines, "\n"))
}

func (m *ProductListModel[T]) renderHelp() string {
	keys := []string{"n/→ next", "p/← prev", "r refetch"}
	if m.categories != nil {
		keys = append(keys, "c category")
	}
	keys = append(keys, "q quit")
	return m.styles.Help.Render(strings.Join(keys, " • "))
}
