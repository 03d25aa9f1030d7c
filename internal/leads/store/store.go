// Package store keeps a local lead collection consistent with the remote
// store under sequential admin edits. Every mutation is optimistic: the
// cached copy is updated before the round trip and rolled back when the
// request fails, so no half-applied state is ever visible.
package store

import (
	"context"
	"sync"

	"lead_console/internal/leads/transport"
	"lead_console/platform/logger"
)

// Remote is the mutation surface of the lead API client.
type Remote interface {
	Update(ctx context.Context, leadID string, updates transport.UpdateLeadRequest, token string) error
	Delete(ctx context.Context, leadID, token string) error
}

// Store holds the cached lead collection for the active view.
type Store struct {
	mu    sync.RWMutex
	leads []transport.Lead

	// locks serializes mutations per lead id so a second edit for the
	// same lead waits for the first to settle instead of racing it.
	locks sync.Map

	remote Remote
	log    *logger.Logger

	// onMutate is invoked after every successful mutation, typically to
	// refresh derived stats.
	onMutate func()
}

// New creates a store backed by the given remote client.
func New(remote Remote, log *logger.Logger) *Store {
	return &Store{remote: remote, log: log}
}

// OnMutate registers a hook called after each successful mutation.
func (s *Store) OnMutate(fn func()) {
	s.onMutate = fn
}

// SetLeads replaces the cached collection, e.g. after a list fetch.
func (s *Store) SetLeads(leads []transport.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = transport.CloneLeads(leads)
}

// Leads returns a copy of the cached collection.
func (s *Store) Leads() []transport.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transport.CloneLeads(s.leads)
}

// Get returns the cached lead with the given id.
func (s *Store) Get(leadID string) (transport.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == leadID {
			return l.Clone(), true
		}
	}
	return transport.Lead{}, false
}

// UpdateStatus optimistically replaces a lead's status and reverts on
// failure.
func (s *Store) UpdateStatus(ctx context.Context, leadID string, status transport.LeadStatus, token string) bool {
	if !status.Valid() {
		s.log.Error("rejected status update", "lead_id", leadID, "status", string(status))
		return false
	}

	return s.mutate(ctx, leadID, "status",
		func(l *transport.Lead) { l.Status = status },
		transport.UpdateLeadRequest{Status: &status},
		token,
	)
}

// UpdateFollowUp optimistically replaces a lead's follow-up sub-record.
// An active follow-up without a date is rejected before any request is
// sent.
func (s *Store) UpdateFollowUp(ctx context.Context, leadID string, followUp transport.FollowUp, token string) bool {
	if err := followUp.Validate(); err != nil {
		s.log.Error("rejected follow-up update", "lead_id", leadID, "error", err)
		return false
	}

	return s.mutate(ctx, leadID, "followUp",
		func(l *transport.Lead) { l.FollowUp = followUp.Clone() },
		transport.UpdateLeadRequest{FollowUp: &followUp},
		token,
	)
}

// UpdateFields optimistically applies a partial edit of the free-text
// lead fields (name, email, phone, message).
func (s *Store) UpdateFields(ctx context.Context, leadID string, updates transport.UpdateLeadRequest, token string) bool {
	return s.mutate(ctx, leadID, "fields",
		func(l *transport.Lead) { applyPartial(l, updates) },
		updates,
		token,
	)
}

// Delete removes the lead remotely and, on success, prunes the cached
// copy. Deletion is not optimistic: a row vanishing and reappearing is
// worse UX than a short wait.
func (s *Store) Delete(ctx context.Context, leadID, token string) bool {
	lock := s.lockFor(leadID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.remote.Delete(logger.ContextWithLeadID(ctx, leadID), leadID, token); err != nil {
		s.log.Error("delete lead failed", "lead_id", leadID, "error", err)
		return false
	}

	s.mu.Lock()
	kept := s.leads[:0]
	for _, l := range s.leads {
		if l.ID != leadID {
			kept = append(kept, l)
		}
	}
	s.leads = kept
	s.mu.Unlock()

	s.notify()
	return true
}

// mutate runs the optimistic update discipline: snapshot, apply locally,
// issue the partial update, roll back the whole collection on failure.
func (s *Store) mutate(ctx context.Context, leadID, field string, apply func(*transport.Lead), updates transport.UpdateLeadRequest, token string) bool {
	lock := s.lockFor(leadID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	snapshot := transport.CloneLeads(s.leads)
	found := false
	for i := range s.leads {
		if s.leads[i].ID == leadID {
			apply(&s.leads[i])
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		s.log.Error("lead not in local collection", "lead_id", leadID)
		return false
	}

	if err := s.remote.Update(logger.ContextWithLeadID(ctx, leadID), leadID, updates, token); err != nil {
		s.mu.Lock()
		s.leads = snapshot
		s.mu.Unlock()
		s.log.Rollback(leadID, field, err)
		return false
	}

	s.notify()
	return true
}

func (s *Store) lockFor(leadID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(leadID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Store) notify() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

func applyPartial(l *transport.Lead, updates transport.UpdateLeadRequest) {
	if updates.FullName != nil {
		l.FullName = *updates.FullName
	}
	if updates.Email != nil {
		l.Email = *updates.Email
	}
	if updates.Phone != nil {
		l.Phone = *updates.Phone
	}
	if updates.Message != nil {
		l.Message = *updates.Message
	}
	if updates.Status != nil {
		l.Status = *updates.Status
	}
	if updates.FollowUp != nil {
		l.FollowUp = updates.FollowUp.Clone()
	}
}
