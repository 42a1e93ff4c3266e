package catalog

import "context"

// DurationResolver adapts a catalog Repository to the scheduling engine's
// duration lookup. Unknown treatments surface ErrTreatmentNotFound; a
// treatment with no recorded duration resolves to zero, leaving the fallback
// to the caller.
type DurationResolver struct {
	repo Repository
}

// NewDurationResolver wraps a repository.
func NewDurationResolver(repo Repository) *DurationResolver {
	if repo == nil {
		panic("catalog: repository required")
	}
	return &DurationResolver{repo: repo}
}

// DurationMinutes returns the treatment's duration in minutes, zero when
// none is recorded.
func (d *DurationResolver) DurationMinutes(ctx context.Context, treatmentID int64) (int, error) {
	t, err := d.repo.GetTreatment(ctx, treatmentID)
	if err != nil {
		return 0, err
	}
	return t.DurationMinutes, nil
}
