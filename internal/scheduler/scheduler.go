// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler periodically reloads the catalog from disk and refreshes
// everything derived from it.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/aromadex/aromadex/internal/catalog"
	"github.com/aromadex/aromadex/internal/locale"
	"github.com/aromadex/aromadex/internal/search"
)

// Scheduler handles the periodic catalog reload job.
type Scheduler struct {
	catalog    *catalog.Catalog
	index      *search.Index
	mergeCache *locale.MergeCache
	cron       *cron.Cron
	logger     *slog.Logger
}

// New creates a new scheduler instance. mergeCache may be nil when the
// deployment runs without a merge cache.
func New(cat *catalog.Catalog, index *search.Index, mergeCache *locale.MergeCache, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		catalog:    cat,
		index:      index,
		mergeCache: mergeCache,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start schedules the reload job with the given cron spec and starts the
// scheduler. An empty spec disables periodic reloads.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.logger.Info("catalog reload schedule disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := s.ReloadNow(); err != nil {
			s.logger.Error("catalog reload failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", spec, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// ReloadNow reloads the catalog and, on a version change, rebuilds the
// search index and drops every cached merge. A reload that fails leaves the
// previous snapshot serving.
func (s *Scheduler) ReloadNow() error {
	before := s.catalog.Version()
	if err := s.catalog.Reload(); err != nil {
		return err
	}
	after := s.catalog.Version()
	if after == before {
		return nil
	}

	s.index.Build(s.catalog.Records(), s.catalog.AllOverlays())

	if s.mergeCache != nil {
		if err := s.mergeCache.Invalidate(context.Background()); err != nil {
			s.logger.Warn("merge cache invalidation failed", "error", err)
		}
	}

	s.logger.Info("catalog reloaded", "version", after, "records", s.catalog.Len())
	return nil
}
