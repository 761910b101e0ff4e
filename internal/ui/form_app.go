package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/HomeQuote/internal/emoji"
	"github.com/yildizm/HomeQuote/internal/form"
	"github.com/yildizm/HomeQuote/internal/formatter"
	"github.com/yildizm/HomeQuote/internal/logger"
)

// focusTarget is the control that receives key input
type focusTarget int

const (
	focusLocation focusTarget = iota
	focusBHK
	focusBath
	focusSqft
	focusSubmit
)

const focusCount = int(focusSubmit) + 1

func (f focusTarget) field() (form.Field, bool) {
	switch f {
	case focusLocation:
		return form.FieldLocation, true
	case focusBHK:
		return form.FieldBHK, true
	case focusBath:
		return form.FieldBath, true
	case focusSqft:
		return form.FieldSqft, true
	default:
		return 0, false
	}
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options configures the form
type Options struct {
	Currency string
	Logger   *logger.Logger
}

// FormModel is the interactive price form
type FormModel struct {
	ctx    context.Context
	client Estimator
	log    *logger.Logger
	form   *form.Model
	styles *Styles

	currency string
	focus    focusTarget
	// selected indexes form.Locations; -1 is the "Select Location" placeholder
	selected         int
	locationsPending bool

	width        int
	height       int
	spinnerFrame int
	quitting     bool
}

// NewFormModel creates the form around a price service client
func NewFormModel(ctx context.Context, client Estimator, opts Options) *FormModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &FormModel{
		ctx:              ctx,
		client:           client,
		log:              log.WithComponent("ui"),
		form:             form.New(),
		styles:           GetStyles(),
		currency:         opts.Currency,
		selected:         -1,
		locationsPending: true,
	}
}

// Form exposes the underlying form state
func (m *FormModel) Form() *form.Model {
	return m.form
}

// Init starts the one-time location load
func (m *FormModel) Init() tea.Cmd {
	m.log.Debug("loading locations")
	return LoadLocationsCommand(m.ctx, m.client)
}

// Update handles messages
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case locationsLoadedMsg:
		m.locationsPending = false
		m.form.LocationsLoaded(msg.locations)
		m.log.Info("locations loaded", logger.Count(len(msg.locations)))
	case locationsFailedMsg:
		m.locationsPending = false
		m.form.LocationsFailed()
		m.log.Error("failed to load locations", logger.Error(msg.err))
	case estimateDoneMsg:
		m.form.Resolve(msg.estimate, nil)
		m.log.Info("estimate displayed", logger.F("price", m.form.Estimate.Price))
	case estimateFailedMsg:
		m.form.Resolve(nil, msg.err)
		m.log.Error("failed to fetch estimate", logger.Error(msg.err))
	}

	return m, nil
}

// handleKeyPress routes keys to navigation, editing or submission
func (m *FormModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "down":
		m.focus = focusTarget((int(m.focus) + 1) % focusCount)
		return m, nil
	case "shift+tab", "up":
		m.focus = focusTarget((int(m.focus) + focusCount - 1) % focusCount)
		return m, nil
	case "enter":
		return m.submit()
	}

	switch m.focus {
	case focusLocation:
		m.handleLocationKey(msg)
	case focusSubmit:
		if msg.String() == " " {
			return m.submit()
		}
	default:
		m.handleNumberKey(msg)
	}

	return m, nil
}

// handleLocationKey moves through the options like a select control
func (m *FormModel) handleLocationKey(msg tea.KeyMsg) {
	n := len(m.form.Locations)
	if n == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyRight:
		m.selectLocation((m.selected+2)%(n+1) - 1)
	case tea.KeyLeft:
		m.selectLocation((m.selected+n+1)%(n+1) - 1)
	case tea.KeyBackspace, tea.KeyDelete:
		m.selectLocation(-1)
	case tea.KeyRunes:
		// type-ahead: next location starting with the typed letter
		prefix := strings.ToLower(string(msg.Runes))
		for step := 1; step <= n; step++ {
			i := (m.selected + step + n) % n
			if m.selected < 0 {
				i = step - 1
			}
			if strings.HasPrefix(strings.ToLower(m.form.Locations[i]), prefix) {
				m.selectLocation(i)
				return
			}
		}
	}
}

func (m *FormModel) selectLocation(i int) {
	m.selected = i
	value := ""
	if i >= 0 {
		value = m.form.Locations[i]
	}
	m.form.Apply(form.FieldChanged{Field: form.FieldLocation, Value: value})
}

// handleNumberKey edits a numeric input. BHK and bathrooms take digits,
// area also takes a single decimal point.
func (m *FormModel) handleNumberKey(msg tea.KeyMsg) {
	field, ok := m.focus.field()
	if !ok {
		return
	}
	value := m.form.State.Get(field)

	switch msg.Type {
	case tea.KeyBackspace:
		if value == "" {
			return
		}
		value = value[:len(value)-1]
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			switch {
			case r >= '0' && r <= '9':
				value += string(r)
			case r == '.' && field == form.FieldSqft && !strings.Contains(value, "."):
				value += string(r)
			}
		}
	default:
		return
	}

	m.form.Apply(form.FieldChanged{Field: field, Value: value})
}

// submit runs the submitter; it is a no-op while a request is in flight
func (m *FormModel) submit() (tea.Model, tea.Cmd) {
	if !m.form.CanSubmit() {
		return m, nil
	}

	req, ok := m.form.Begin()
	if !ok {
		m.log.Debug("submission rejected", logger.F("reason", m.form.Err))
		return m, nil
	}

	m.log.Info("submitting estimate",
		logger.F("location", req.Location),
		logger.F("bhk", req.BHK),
		logger.F("bath", req.Bath),
		logger.F("sqft", req.Sqft))

	return m, tea.Batch(EstimateCommand(m.ctx, m.client, req), tick())
}

// handleTick animates the spinner while a request is in flight
func (m *FormModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.form.Loading {
		return m, nil
	}
	m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	return m, tick()
}

// View renders the form
func (m *FormModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	rows := []string{
		s.Title.Render(emoji.GetEmoji("home") + " Real Estate Price Predictor"),
		"",
	}

	for _, f := range form.Fields {
		rows = append(rows, m.renderField(f))
	}

	rows = append(rows, "", m.renderButton())

	if m.form.Err != "" {
		rows = append(rows, "", s.Error.Render(m.form.Err))
	}
	if m.form.HasEstimate {
		rows = append(rows, "", s.Success.Render("Estimated Price: "+formatter.Price(m.currency, m.form.Estimate.Price)))
	}

	rows = append(rows, "", s.Muted.Render("tab/↑↓ move • ←→ or type to choose location • enter submit • esc quit"))

	content := s.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *FormModel) renderField(f form.Field) string {
	s := m.styles
	focused := false
	if ff, ok := m.focus.field(); ok && ff == f {
		focused = true
	}

	var value string
	switch {
	case f == form.FieldLocation && m.locationsPending:
		value = s.Muted.Render("Loading locations...")
	case f == form.FieldLocation:
		value = m.renderLocation(focused)
	default:
		value = m.form.State.Get(f)
		if focused {
			value += "_"
		}
		value = s.Value.Render(value)
	}

	prefix := "  "
	label := s.Label.Render(f.Label() + ":")
	if focused {
		prefix = "▶ "
		label = s.FocusedLabel.Render(f.Label() + ":")
	}

	return prefix + label + value
}

func (m *FormModel) renderLocation(focused bool) string {
	s := m.styles
	text := "Select Location"
	style := s.Muted
	if m.selected >= 0 {
		text = m.form.Locations[m.selected]
		style = s.Value
	}
	if focused && len(m.form.Locations) > 0 {
		return style.Render(fmt.Sprintf("◀ %s ▶", text))
	}
	return style.Render(text)
}

func (m *FormModel) renderButton() string {
	s := m.styles
	if m.form.Loading {
		return s.Disabled.Render(fmt.Sprintf("[ %s Predicting... ]", spinnerChars[m.spinnerFrame]))
	}

	label := "[ Get Estimated Price ]"
	if m.focus == focusSubmit {
		return "▶ " + s.Focused.Render(label)
	}
	return "  " + s.Button.Render(label)
}

// Run runs the interactive form until the user quits or ctx is cancelled
func Run(ctx context.Context, client Estimator, opts Options) error {
	model := NewFormModel(ctx, client, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
