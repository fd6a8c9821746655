// Package tui is the terminal storefront: catalog, cart, purchase history and forum.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/client"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Tab is one section of the storefront.
type Tab int

const (
	TabCatalog Tab = iota
	TabCart
	TabHistory
	TabForum
)

var tabNames = []string{"Catalog", "Cart", "History", "Forum"}

func (t Tab) String() string { return tabNames[t] }

// ShopModel is the Bubbletea model of the storefront. The cart is only
// touched from Update; network calls run as commands.
type ShopModel struct {
	shop *client.Storefront
	user *models.User

	tab    Tab
	cursor int

	draft  textinput.Model
	rating int

	loading     bool
	checkingOut bool
	posting     bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewShopModel creates the storefront UI for a logged-in user.
func NewShopModel(shop *client.Storefront, user *models.User) ShopModel {
	draft := textinput.New()
	draft.Placeholder = "Tell others what you think..."
	draft.CharLimit = 1000
	draft.Width = 60

	return ShopModel{
		shop:    shop,
		user:    user,
		draft:   draft,
		loading: true,
	}
}

// Init initializes the model
func (m ShopModel) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.shop),
		tea.EnterAltScreen,
	)
}

// Messages
type loadedMsg struct {
	err error
}

type checkoutMsg struct {
	purchase *models.Purchase
	err      error
}

type commentMsg struct {
	comment *models.Comment
	err     error
}

// Commands
func loadCmd(shop *client.Storefront) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: shop.Load(context.Background())}
	}
}

// checkoutCmd runs to completion; there is no way to cancel a checkout.
func checkoutCmd(shop *client.Storefront, items []models.PurchaseItem, total decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		purchase, err := shop.PlaceOrder(context.Background(), items, total)
		return checkoutMsg{purchase: purchase, err: err}
	}
}

func commentCmd(shop *client.Storefront, draft client.CommentDraft) tea.Cmd {
	return func() tea.Msg {
		comment, err := shop.PostDraft(context.Background(), draft)
		return commentMsg{comment: comment, err: err}
	}
}

func (m *ShopModel) notify(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *ShopModel) fail(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

// Update handles messages
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.draft.Width = max(20, msg.Width-12)
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.fail("Some sections could not be loaded (r to retry): %v", msg.err)
		}
		m.clampCursor()
		return m, nil

	case checkoutMsg:
		m.checkingOut = false
		if msg.err != nil {
			m.fail("Checkout failed, your cart was kept: %v", msg.err)
			return m, nil
		}
		m.shop.Cart.Clear()
		m.clampCursor()
		m.notify("Purchase #%d recorded, total %s", msg.purchase.ID, msg.purchase.Total.StringFixed(2))
		return m, nil

	case commentMsg:
		m.posting = false
		if msg.err != nil {
			m.fail("Comment not posted, your draft was kept: %v", msg.err)
			return m, nil
		}
		m.draft.Reset()
		m.draft.Blur()
		m.rating = 0
		m.notify("Comment posted")
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.tab == TabForum && m.draft.Focused() {
			return m.updateDraft(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ShopModel) updateDraft(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.draft.Blur()
		return m, nil
	case "enter":
		return m.submitComment()
	}

	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	return m, cmd
}

func (m ShopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "shift+tab":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
		return m, nil

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.notify("Reloading...")
		return m, loadCmd(m.shop)

	case "c":
		return m.checkout()
	}

	switch m.tab {
	case TabCatalog:
		if key == "a" {
			return m.addSelected()
		}
	case TabCart:
		if key == "x" {
			return m.removeSelected()
		}
	case TabForum:
		switch key {
		case "1", "2", "3", "4", "5":
			m.rating = int(key[0] - '0')
			return m, nil
		case "i", "/":
			cmd := m.draft.Focus()
			return m, cmd
		case "enter":
			return m.submitComment()
		}
	}
	return m, nil
}

func (m ShopModel) addSelected() (tea.Model, tea.Cmd) {
	if m.checkingOut {
		m.fail("Checkout in progress")
		return m, nil
	}
	products := m.shop.Catalog.Items()
	if m.cursor >= len(products) {
		return m, nil
	}
	p := products[m.cursor]
	m.shop.Cart.Add(p)
	m.notify("Added %s (%d in cart)", p.Name, m.shop.Cart.Quantity(p.ID))
	return m, nil
}

func (m ShopModel) removeSelected() (tea.Model, tea.Cmd) {
	if m.checkingOut {
		m.fail("Checkout in progress")
		return m, nil
	}
	items := m.shop.Cart.Items()
	if m.cursor >= len(items) {
		return m, nil
	}
	removed := items[m.cursor].Product
	m.shop.Cart.Remove(removed.ID)
	m.clampCursor()
	m.notify("Removed %s", removed.Name)
	return m, nil
}

func (m ShopModel) checkout() (tea.Model, tea.Cmd) {
	if m.checkingOut {
		return m, nil
	}
	if m.shop.Cart.IsEmpty() {
		m.fail("Your cart is empty")
		return m, nil
	}
	m.checkingOut = true
	m.notify("Checking out %d item(s)...", m.shop.Cart.Count())
	return m, checkoutCmd(m.shop, m.shop.Cart.Snapshot(), m.shop.Cart.Total())
}

func (m ShopModel) submitComment() (tea.Model, tea.Cmd) {
	if m.posting {
		return m, nil
	}
	draft := client.CommentDraft{Content: m.draft.Value(), Rating: m.rating}
	if strings.TrimSpace(draft.Content) == "" || m.rating == 0 {
		m.fail("%v", client.ErrIncompleteDraft)
		return m, nil
	}
	m.posting = true
	m.notify("Posting comment...")
	return m, commentCmd(m.shop, draft)
}

func (m ShopModel) rows() int {
	switch m.tab {
	case TabCatalog:
		return len(m.shop.Catalog.Items())
	case TabCart:
		return m.shop.Cart.Len()
	case TabHistory:
		return len(m.shop.History.Items())
	case TabForum:
		return len(m.shop.Forum.Items())
	}
	return 0
}

func (m *ShopModel) clampCursor() {
	if n := m.rows(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// View renders the model
func (m ShopModel) View() string {
	var tabs []string
	for i, name := range tabNames {
		label := name
		if Tab(i) == TabCart && !m.shop.Cart.IsEmpty() {
			label = fmt.Sprintf("%s (%d)", name, m.shop.Cart.Count())
		}
		if Tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	title := "VR Shop"
	if m.user != nil {
		title = fmt.Sprintf("VR Shop · %s", m.user.Name)
	}

	var body string
	switch m.tab {
	case TabCatalog:
		body = m.catalogView()
	case TabCart:
		body = m.cartView()
	case TabHistory:
		body = m.historyView()
	case TabForum:
		body = m.forumView()
	}

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = dangerStyle.Render(m.status)
		} else {
			status = successStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		boxStyle.Render(body),
		status,
		m.helpView(),
	)
}

func (m ShopModel) row(i int, text string) string {
	if i == m.cursor {
		return selectedItemStyle.Render("› " + text)
	}
	return unselectedItemStyle.Render(text)
}

func (m ShopModel) catalogView() string {
	products := m.shop.Catalog.Items()
	if len(products) == 0 {
		if m.loading {
			return mutedStyle.Render("Loading products...")
		}
		return mutedStyle.Render("No products yet.")
	}

	lines := make([]string, 0, len(products))
	for i, p := range products {
		text := fmt.Sprintf("%-32s %10s", truncate(p.Name, 32), p.Price.StringFixed(2))
		if n := m.shop.Cart.Quantity(p.ID); n > 0 {
			text += mutedStyle.Render(fmt.Sprintf("  (%d in cart)", n))
		}
		lines = append(lines, m.row(i, text))
	}
	return strings.Join(lines, "\n")
}

func (m ShopModel) cartView() string {
	items := m.shop.Cart.Items()
	if len(items) == 0 {
		return mutedStyle.Render("Your cart is empty. Add products from the catalog with a.")
	}

	lines := make([]string, 0, len(items)+2)
	for i, item := range items {
		lines = append(lines, m.row(i, fmt.Sprintf("%-32s x%-3d %10s",
			truncate(item.Product.Name, 32), item.Quantity, item.LineTotal().StringFixed(2))))
	}
	lines = append(lines, "", fmt.Sprintf("    %-37s %10s", "Total", m.shop.Cart.Total().StringFixed(2)))
	return strings.Join(lines, "\n")
}

func (m ShopModel) historyView() string {
	purchases := m.shop.History.Items()
	if len(purchases) == 0 {
		return mutedStyle.Render("No purchases yet.")
	}

	lines := make([]string, 0, len(purchases))
	for i, p := range purchases {
		units := 0
		for _, item := range p.Items {
			units += item.Quantity
		}
		lines = append(lines, m.row(i, fmt.Sprintf("#%-5d %s  %3d item(s)  %10s",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04"), units, p.Total.StringFixed(2))))
	}
	return strings.Join(lines, "\n")
}

func (m ShopModel) forumView() string {
	comments := m.shop.Forum.Items()

	lines := make([]string, 0, len(comments)+4)
	if len(comments) == 0 {
		lines = append(lines, mutedStyle.Render("No comments yet. Be the first!"))
	}
	for i, c := range comments {
		lines = append(lines, m.row(i, fmt.Sprintf("%s  %s %s",
			FormatRating(c.Rating), c.Content, mutedStyle.Render(fmt.Sprintf("(user %d)", c.UserID)))))
	}

	lines = append(lines, "", "Your comment: "+FormatRating(m.rating), m.draft.View())
	return strings.Join(lines, "\n")
}

func (m ShopModel) helpView() string {
	keys := []string{FormatKey("tab", "section"), FormatKey("↑/↓", "select")}
	switch m.tab {
	case TabCatalog:
		keys = append(keys, FormatKey("a", "add to cart"))
	case TabCart:
		keys = append(keys, FormatKey("x", "remove"))
	case TabForum:
		if m.draft.Focused() {
			return helpStyle.Render(FormatKey("enter", "post") + " • " + FormatKey("esc", "stop typing"))
		}
		keys = append(keys, FormatKey("i", "write"), FormatKey("1-5", "rate"), FormatKey("enter", "post"))
	}
	keys = append(keys, FormatKey("c", "checkout"), FormatKey("r", "reload"), FormatKey("q", "quit"))
	return helpStyle.Render(strings.Join(keys, " • "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RunShop starts the storefront and blocks until the user quits.
func RunShop(shop *client.Storefront, user *models.User) error {
	p := tea.NewProgram(NewShopModel(shop, user))
	_, err := p.Run()
	return err
}

