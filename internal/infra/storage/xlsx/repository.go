package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lynx/internal/domain/shared/money"
	"lynx/internal/domain/workbook"
)

var ErrRepositoryMisconfigured = errors.New("xlsx: repository misconfigured")

// Repository is the workbook.Repository backed by one .xlsx file.
type Repository struct {
	path   string
	rate   money.Rate
	cache  *Cache
	logger *slog.Logger
}

func NewRepository(path string, rate money.Rate, cache *Cache, logger *slog.Logger) *Repository {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{path: path, rate: rate, cache: cache, logger: logger.With("workbook", path)}
}

func (r *Repository) Path() string { return r.path }

func (r *Repository) Load(ctx context.Context) (workbook.Snapshot, error) {
	if r == nil || r.path == "" {
		return workbook.Snapshot{}, ErrRepositoryMisconfigured
	}
	if err := ctx.Err(); err != nil {
		return workbook.Snapshot{}, err
	}
	snap, hit, err := r.cache.Get(r.path, r.read)
	if err != nil {
		return workbook.Snapshot{}, err
	}
	if !hit {
		r.logger.InfoContext(ctx, "workbook loaded",
			"bookings", len(snap.Workbook.Bookings),
			"cost_rows", len(snap.Workbook.Costs.Rows),
			"consumables", len(snap.Workbook.Consumables.Items),
		)
		for _, w := range snap.Report.Warnings() {
			r.logger.WarnContext(ctx, "workbook normalized with loss", "detail", w)
		}
	}
	return snap, nil
}

func (r *Repository) read() (workbook.Snapshot, error) {
	raw, err := Read(r.path)
	if err != nil {
		return workbook.Snapshot{}, err
	}
	wb, rep, err := workbook.Normalize(raw, r.rate)
	if err != nil {
		return workbook.Snapshot{}, fmt.Errorf("xlsx: normalize %s: %w", r.path, err)
	}
	return workbook.Snapshot{Workbook: wb, Report: rep}, nil
}

// Save writes the three tracker sheets and drops the cached copy.
func (r *Repository) Save(ctx context.Context, wb workbook.Workbook) error {
	if r == nil || r.path == "" {
		return ErrRepositoryMisconfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.cache.Invalidate(r.path)
	if err := Write(r.path, workbook.ToRaw(wb)); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "workbook saved", "bookings", len(wb.Bookings))
	return nil
}

// Invalidate forgets the cached copy so the next Load reads the file.
func (r *Repository) Invalidate() { r.cache.Invalidate(r.path) }

var _ workbook.Repository = (*Repository)(nil)
