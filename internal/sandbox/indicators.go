package sandbox

import (
	"context"
	"fmt"
	"path"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const (
	ToggleActive   = "is_active"
	ToggleFeatured = "is_featured"
)

func (m *Manager) ListIndicators(ctx context.Context, q IndicatorQuery) (domain.ListResponse[domain.Indicator], error) {
	pager := NewPager(q.Page, q.PerPage)
	q.Page, q.PerPage = pager.Page, pager.PerPage

	items, total, err := m.store.Indicators.ListIndicators(ctx, q)
	if err != nil {
		return domain.ListResponse[domain.Indicator]{}, fmt.Errorf("store list indicators: %w", err)
	}

	return domain.ListResponse[domain.Indicator]{
		Data: nonNil(items),
		Meta: domain.NewPaginationMeta(pager.Page, pager.PerPage, total),
	}, nil
}

func (m *Manager) IndicatorStats(ctx context.Context) (domain.IndicatorStats, error) {
	return m.store.Indicators.IndicatorStats(ctx)
}

func (m *Manager) CreateIndicator(ctx context.Context, in domain.IndicatorInput) (domain.Indicator, error) {
	if err := in.Validate(); err != nil {
		return domain.Indicator{}, invalid(err)
	}

	s, err := makeSlug(in.Slug, in.Name)
	if err != nil {
		return domain.Indicator{}, invalid(err)
	}

	ind := domain.Indicator{CreatedAt: m.now()}
	applyIndicatorInput(&ind, in, s)

	if err := m.store.Indicators.CreateIndicator(ctx, &ind); err != nil {
		return domain.Indicator{}, fmt.Errorf("store create indicator: %w", err)
	}
	return ind, nil
}

func (m *Manager) UpdateIndicator(ctx context.Context, id int64, in domain.IndicatorInput) (domain.Indicator, error) {
	if err := in.Validate(); err != nil {
		return domain.Indicator{}, invalid(err)
	}

	ind, err := m.store.Indicators.IndicatorByID(ctx, id)
	if err != nil {
		return ind, err
	}

	s, err := makeSlug(in.Slug, in.Name)
	if err != nil {
		return domain.Indicator{}, invalid(err)
	}
	applyIndicatorInput(&ind, in, s)

	if err := m.store.Indicators.UpdateIndicator(ctx, &ind); err != nil {
		return domain.Indicator{}, fmt.Errorf("store update indicator: %w", err)
	}
	return ind, nil
}

func applyIndicatorInput(ind *domain.Indicator, in domain.IndicatorInput, s string) {
	ind.Name = in.Name
	ind.Slug = s
	ind.Description = in.Description
	ind.Platforms = nonNil(in.Platforms)
	ind.Price = in.Price
	ind.IsActive = in.IsActive
	ind.IsFeatured = in.IsFeatured
}

func (m *Manager) DeleteIndicator(ctx context.Context, id int64) error {
	return m.store.Indicators.DeleteIndicator(ctx, id)
}

// ToggleIndicator flips is_active or is_featured.
func (m *Manager) ToggleIndicator(ctx context.Context, id int64, field string) (domain.Indicator, error) {
	ind, err := m.store.Indicators.IndicatorByID(ctx, id)
	if err != nil {
		return ind, err
	}

	switch field {
	case ToggleActive:
		ind.IsActive = !ind.IsActive
	case ToggleFeatured:
		ind.IsFeatured = !ind.IsFeatured
	default:
		return domain.Indicator{}, invalid(fmt.Errorf("unknown toggle field %q", field))
	}

	if err := m.store.Indicators.UpdateIndicator(ctx, &ind); err != nil {
		return domain.Indicator{}, fmt.Errorf("store toggle indicator: %w", err)
	}
	return ind, nil
}

// AddIndicatorFile stores an uploaded platform file or documentation file.
// label is the platform for platform files and the title for docs.
func (m *Manager) AddIndicatorFile(ctx context.Context, id int64, kind, label, filename string, data []byte) (domain.IndicatorFile, error) {
	if _, err := m.store.Indicators.IndicatorByID(ctx, id); err != nil {
		return domain.IndicatorFile{}, err
	}
	if kind == domain.IndicatorFilePlatform && label == "" {
		return domain.IndicatorFile{}, invalid(fmt.Errorf("platform: cannot be blank"))
	}

	media := domain.Media{Filename: path.Base(filename), MimeType: "application/octet-stream"}
	if err := m.store.Media.SaveMedia(ctx, &media, data); err != nil {
		return domain.IndicatorFile{}, fmt.Errorf("store save indicator file: %w", err)
	}

	f := domain.IndicatorFile{
		IndicatorID: id,
		Kind:        kind,
		Filename:    media.Filename,
		Size:        media.Size,
		URL:         media.URL,
		CreatedAt:   m.now(),
	}
	if kind == domain.IndicatorFilePlatform {
		f.Platform = label
	} else {
		f.Title = label
	}

	if err := m.store.Indicators.AddIndicatorFile(ctx, &f); err != nil {
		return domain.IndicatorFile{}, fmt.Errorf("store add indicator file: %w", err)
	}
	return f, nil
}
