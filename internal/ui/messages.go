package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/HomeQuote/internal/estimator"
)

// Estimator is the price service as seen by the form
type Estimator interface {
	Locations(ctx context.Context) ([]string, error)
	Estimate(ctx context.Context, r estimator.Request) (*estimator.Estimate, error)
}

type locationsLoadedMsg struct {
	locations []string
}

type locationsFailedMsg struct {
	err error
}

type estimateDoneMsg struct {
	estimate *estimator.Estimate
}

type estimateFailedMsg struct {
	err error
}

type tickMsg time.Time

// LoadLocationsCommand fetches the location list once
func LoadLocationsCommand(ctx context.Context, client Estimator) tea.Cmd {
	return func() tea.Msg {
		locations, err := client.Locations(ctx)
		if err != nil {
			return locationsFailedMsg{err: err}
		}
		return locationsLoadedMsg{locations: locations}
	}
}

// EstimateCommand submits one request
func EstimateCommand(ctx context.Context, client Estimator, req estimator.Request) tea.Cmd {
	return func() tea.Msg {
		estimate, err := client.Estimate(ctx, req)
		if err != nil {
			return estimateFailedMsg{err: err}
		}
		return estimateDoneMsg{estimate: estimate}
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
