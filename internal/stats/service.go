package stats

import (
	"context"
	"log/slog"

	"print3d-order-admin/internal/pkg/model"
)

type Counter interface {
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)
}

type Summary struct {
	Total       int
	PerStatus   map[model.OrderStatus]int
	NewCount    int
	ActiveCount int
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type DefaultService struct {
	counter Counter
}

func NewDefaultService(counter Counter) Service {
	return &DefaultService{counter: counter}
}

// Summary is recomputed from storage on every call.
func (d *DefaultService) Summary(ctx context.Context) (*Summary, error) {
	counts, err := d.counter.CountByStatus(ctx)
	if err != nil {
		slog.Error("Error computing order stats", "error", err)
		return nil, err
	}

	s := &Summary{
		PerStatus: make(map[model.OrderStatus]int, len(model.Statuses)),
	}
	for _, status := range model.Statuses {
		n := counts[status]
		s.PerStatus[status] = n
		s.Total += n
	}
	// Submitted orders have not been picked up yet either.
	s.NewCount = s.PerStatus[model.StatusNew] + s.PerStatus[model.StatusSubmitted]
	for _, status := range model.ActiveStatuses {
		s.ActiveCount += s.PerStatus[status]
	}
	return s, nil
}
