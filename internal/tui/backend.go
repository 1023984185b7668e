package tui

import (
	"context"
	"io"

	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/views"
)

// Backend is the part of service.Service the terminal UI drives.
type Backend interface {
	Dashboard(ctx context.Context) (views.Dashboard, service.LoadInfo)
	Tracker(ctx context.Context, f *views.Filter) (views.TrackerView, service.LoadInfo)
	Insights(ctx context.Context) (views.Insights, service.LoadInfo)
	Calendar(ctx context.Context) (views.Calendar, service.LoadInfo)
	Export(ctx context.Context, f *views.Filter, w io.Writer) (string, int, error)

	Add(ctx context.Context, form domain.Form) (service.Mutation, error)
	Update(ctx context.Context, id string, form domain.Form) (service.Mutation, error)
	Delete(ctx context.Context, id string) (service.Mutation, error)
	Duplicate(ctx context.Context, id string) (service.Mutation, error)
	Seed(ctx context.Context) (service.Mutation, error)
	Today() domain.Date
}
