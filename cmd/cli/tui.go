package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pizzabot/internal/chat"
	"pizzabot/internal/models"
)

const (
	viewMain   = "main"
	viewChat   = "chat"
	viewOrders = "orders"

	transcriptLines = 18
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#C8102E")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0a84ff")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#30d158")).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E8E93")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// statusKeys maps dashboard keys to the status they set.
var statusKeys = map[string]models.OrderStatus{
	"p": models.OrderStatusPending,
	"c": models.OrderStatusCooking,
	"d": models.OrderStatusDelivered,
	"x": models.OrderStatusCancelled,
}

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	orderTable  table.Model
	input       textinput.Model
	spinner     spinner.Model
	backend     Backend
	ctx         context.Context
	transcript  []string
	orders      []models.Order
	loading     bool
	currentView string
	status      string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

func (i item) FilterValue() string { return i.title }
func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }

// Custom message types for the tea.Model
type replyMsg struct {
	reply chat.Reply
}

type receiptMsg struct {
	receipt *chat.Receipt
}

type ordersMsg struct {
	orders []models.Order
}

type orderUpdatedMsg struct {
	order *models.Order
}

type errorMsg struct {
	err string
}

func initialModel(ctx context.Context, backend Backend, welcome chat.Reply) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Chat", desc: "Ask about the menu, fill a cart and place an order"},
		item{title: "Orders Dashboard", desc: "Review orders and move them through the kitchen"},
		item{title: "Exit", desc: "Exit the application"},
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 60, 14)
	mainMenu.Title = "Pizza Hut Assistant"

	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Customer", Width: 18},
		{Title: "Items", Width: 28},
		{Title: "Total", Width: 10},
		{Title: "Status", Width: 10},
		{Title: "Placed", Width: 17},
	}
	orderTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ti := textinput.New()
	ti.Placeholder = "Type a message or /help"
	ti.CharLimit = 256
	ti.Width = 60

	m := Model{
		mainMenu:    mainMenu,
		orderTable:  orderTable,
		input:       ti,
		spinner:     s,
		backend:     backend,
		ctx:         ctx,
		currentView: viewMain,
	}
	m.appendReply(welcome)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.currentView {
		case viewMain:
			return m.updateMain(msg)
		case viewChat:
			return m.updateChat(msg)
		case viewOrders:
			return m.updateOrders(msg)
		}
	case replyMsg:
		m.loading = false
		m.error = ""
		m.appendReply(msg.reply)
		return m, nil
	case receiptMsg:
		m.loading = false
		m.error = ""
		m.transcript = append(m.transcript, botStyle.Render("Bot: ")+msg.receipt.Text)
		m.status = fmt.Sprintf("Order #%d placed", msg.receipt.OrderID)
		return m, nil
	case ordersMsg:
		m.loading = false
		m.orders = msg.orders
		m.orderTable.SetRows(orderRows(msg.orders))
		return m, nil
	case orderUpdatedMsg:
		m.error = ""
		m.status = fmt.Sprintf("Order #%d is now %s", msg.order.ID, msg.order.Status)
		return m, fetchOrders(m.ctx, m.backend)
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		selected, ok := m.mainMenu.SelectedItem().(item)
		if !ok {
			return m, nil
		}
		switch selected.title {
		case "Exit":
			return m, tea.Quit
		case "Chat":
			m.currentView = viewChat
			m.input.Focus()
			return m, textinput.Blink
		case "Orders Dashboard":
			m.currentView = viewOrders
			m.loading = true
			return m, fetchOrders(m.ctx, m.backend)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.mainMenu, cmd = m.mainMenu.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentView = viewMain
		m.input.Blur()
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if line == "" {
			return m, nil
		}
		return m.submit(line)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs a chat line: a slash command or a message for the bot.
func (m Model) submit(line string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(line, "/") {
		m.transcript = append(m.transcript, userStyle.Render("You: ")+line)
		m.loading = true
		return m, sendMessage(m.ctx, m.backend, line)
	}

	name, args, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	args = strings.TrimSpace(args)
	switch strings.ToLower(name) {
	case "add":
		m.loading = true
		return m, addItem(m.ctx, m.backend, args)
	case "clear":
		m.loading = true
		return m, clearCart(m.ctx, m.backend)
	case "checkout":
		m.loading = true
		return m, checkout(m.ctx, m.backend, parseCheckout(args))
	case "orders":
		m.currentView = viewOrders
		m.input.Blur()
		m.loading = true
		return m, fetchOrders(m.ctx, m.backend)
	case "help":
		m.transcript = append(m.transcript, imageStyle.Render(chatHelp))
		return m, nil
	case "quit":
		return m, tea.Quit
	default:
		m.error = "Unknown command /" + name
		return m, nil
	}
}

func (m Model) updateOrders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "esc":
		m.currentView = viewMain
		return m, nil
	case "r":
		m.loading = true
		return m, fetchOrders(m.ctx, m.backend)
	}

	if status, ok := statusKeys[key]; ok {
		order, ok := m.selectedOrder()
		if !ok {
			return m, nil
		}
		if order.Status.IsTerminal() {
			m.error = fmt.Sprintf("Order #%d is already %s", order.ID, order.Status)
			return m, nil
		}
		return m, updateStatus(m.ctx, m.backend, order.ID, status)
	}

	var cmd tea.Cmd
	m.orderTable, cmd = m.orderTable.Update(msg)
	return m, cmd
}

func (m Model) selectedOrder() (models.Order, bool) {
	i := m.orderTable.Cursor()
	if i < 0 || i >= len(m.orders) {
		return models.Order{}, false
	}
	return m.orders[i], true
}

func (m *Model) appendReply(reply chat.Reply) {
	if reply.Text != "" {
		m.transcript = append(m.transcript, botStyle.Render("Bot: ")+reply.Text)
	}
	if reply.Image != nil {
		m.transcript = append(m.transcript, imageStyle.Render(fmt.Sprintf("[image %s] %s", reply.Image.Ref, reply.Image.Caption)))
	}
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	switch m.currentView {
	case viewMain:
		b.WriteString(m.mainMenu.View())
	case viewChat:
		b.WriteString(titleStyle.Render("Chat") + "\n\n")
		lines := m.transcript
		if len(lines) > transcriptLines {
			lines = lines[len(lines)-transcriptLines:]
		}
		b.WriteString(strings.Join(lines, "\n") + "\n\n")
		if m.loading {
			b.WriteString(m.spinner.View() + " thinking...\n")
		}
		b.WriteString(m.input.View() + "\n")
		b.WriteString("\n/add [item], /clear, /checkout name; address; payment, /orders, esc to go back\n")
	case viewOrders:
		b.WriteString(titleStyle.Render("Orders Dashboard") + "\n\n")
		if m.loading {
			b.WriteString(m.spinner.View() + " loading...\n")
		}
		b.WriteString(m.orderTable.View() + "\n")
		b.WriteString("\np pending, c cooking, d delivered, x cancelled, r refresh, esc to go back\n")
	default:
		return "Loading..."
	}

	if m.status != "" {
		b.WriteString(successStyle.Render(m.status) + "\n")
	}
	if m.error != "" {
		b.WriteString(errorStyle.Render(m.error) + "\n")
	}
	return docStyle.Render(b.String())
}

const chatHelp = `Commands:
  /add [item]                       add the item on display, or the named item
  /clear                            empty the cart
  /checkout name; address; payment  place the order
  /orders                           open the orders dashboard`

// parseCheckout reads "name; address; payment method". Missing parts stay
// empty and are reported by the server.
func parseCheckout(args string) chat.CheckoutForm {
	parts := strings.SplitN(args, ";", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return chat.CheckoutForm{
		Name:          strings.TrimSpace(parts[0]),
		Address:       strings.TrimSpace(parts[1]),
		PaymentMethod: strings.TrimSpace(parts[2]),
	}
}

func orderRows(orders []models.Order) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, o := range orders {
		names := make([]string, len(o.Items))
		for j, it := range o.Items {
			names[j] = it.Name
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", o.ID),
			o.CustomerName,
			strings.Join(names, ", "),
			fmt.Sprintf("%d", o.TotalAmount),
			string(o.Status),
			o.Timestamp.Local().Format("2006-01-02 15:04"),
		}
	}
	return rows
}

func sendMessage(ctx context.Context, backend Backend, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.Send(ctx, text)
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return replyMsg{reply: reply}
	}
}

func addItem(ctx context.Context, backend Backend, name string) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.AddItem(ctx, name)
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return replyMsg{reply: reply}
	}
}

func clearCart(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.ClearCart(ctx)
		if err != nil {
			return errorMsg{err: err.Error()}
		}
		return replyMsg{reply: reply}
	}
}

func checkout(ctx context.Context, backend Backend, form chat.CheckoutForm) tea.Cmd {
	return func() tea.Msg {
		receipt, err := backend.Checkout(ctx, form)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Checkout failed: %v", err)}
		}
		return receiptMsg{receipt: receipt}
	}
}

func fetchOrders(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		orders, err := backend.GetOrders(ctx, "")
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

func updateStatus(ctx context.Context, backend Backend, id uint, status models.OrderStatus) tea.Cmd {
	return func() tea.Msg {
		order, err := backend.UpdateStatus(ctx, id, status)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error updating order #%d: %v", id, err)}
		}
		return orderUpdatedMsg{order: order}
	}
}
