// Package dashboard aggregates the data a console view renders in one
// round: the lead page, the daily counters and the admin profile.
package dashboard

import (
	"context"

	"lead_console/internal/admin"
	leadsclient "lead_console/internal/leads/client"
	"lead_console/internal/leads/transport"
	"lead_console/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Overview is one rendered dashboard state.
type Overview struct {
	List    leadsclient.ListResult
	Stats   *admin.DailyStats
	Profile *admin.Profile
}

// Service fans out the dashboard fetches.
type Service struct {
	leads *leadsclient.Client
	admin *admin.Client
	log   *logger.Logger
}

// NewService creates a dashboard service.
func NewService(leads *leadsclient.Client, adminClient *admin.Client, log *logger.Logger) *Service {
	return &Service{leads: leads, admin: adminClient, log: log}
}

// Overview fetches the lead page, stats and profile concurrently. The
// list is fail-soft and always present; stats and profile are nil when
// their fetch failed, which the view renders as unknown.
func (s *Service) Overview(ctx context.Context, token string, page, pageSize int, filters transport.ListFilters) Overview {
	var overview Overview

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		overview.List = s.leads.List(groupCtx, token, page, pageSize, filters)
		return nil
	})

	group.Go(func() error {
		stats, err := s.admin.DailyStats(groupCtx, token)
		if err != nil {
			s.log.Error("daily stats fetch failed", "error", err)
			return nil
		}
		overview.Stats = stats
		return nil
	})

	group.Go(func() error {
		profile, err := s.admin.Profile(groupCtx, token)
		if err != nil {
			s.log.Error("profile fetch failed", "error", err)
			return nil
		}
		overview.Profile = profile
		return nil
	})

	// Every branch swallows its own error, so Wait only propagates a
	// cancelled context.
	_ = group.Wait()

	return overview
}
