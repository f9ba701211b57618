package stats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
)

// StatsPort defines the interface for querying the stats module.
// Consumers should use this interface instead of directly referencing the Module.
type StatsPort interface {
	GetSummary(ctx context.Context) (Summary, error)
}

// statsAdapter implements StatsPort using the service container.
type statsAdapter struct {
	container mono.ServiceContainer
}

// NewStatsAdapter creates a new adapter for the stats service.
func NewStatsAdapter(container mono.ServiceContainer) StatsPort {
	return &statsAdapter{
		container: container,
	}
}

// GetSummary retrieves the aggregate activity summary.
func (a *statsAdapter) GetSummary(ctx context.Context) (Summary, error) {
	client, err := a.container.GetRequestReplyService(ServiceGetSummary)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get %s service: %w", ServiceGetSummary, err)
	}

	resp, err := client.Call(ctx, []byte{})
	if err != nil {
		return Summary{}, fmt.Errorf("%s service call failed: %w", ServiceGetSummary, err)
	}

	var summary Summary
	if err := json.Unmarshal(resp.Data, &summary); err != nil {
		return Summary{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return summary, nil
}
