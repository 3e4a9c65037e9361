// Package usage implements monthly admission control for metered AI requests.
package usage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/model"
)

// ErrRollover is returned when the monthly counter reset could not be persisted.
var ErrRollover = errors.New("usage rollover failed")

// Store persists the usage counter of a subscriber.
type Store interface {
	// ResetUsage sets the count to zero and stamps month as the last reset month.
	ResetUsage(ctx context.Context, userID uuid.UUID, month int) error
	// IncrementUsage atomically adds one to the count.
	IncrementUsage(ctx context.Context, userID uuid.UUID) error
}

type Decision struct {
	Admit        bool
	LimitReached bool
	Message      string
	Limit        int
	// Remaining is -1 for unmetered plans.
	Remaining int
}

type Quota struct {
	Plan      model.Plan `json:"plan"`
	Used      int        `json:"used"`
	Limit     int        `json:"limit"`
	Remaining int        `json:"remaining"`
	Unlimited bool       `json:"unlimited"`
}

type Gate struct {
	store     Store
	freeLimit int
}

func NewGate(store Store, freeLimit int) *Gate {
	return &Gate{store: store, freeLimit: freeLimit}
}

// CheckAdmission decides whether sub may run a metered request at now.
// A stale month is reset and persisted before the limit check, whatever the outcome.
func (g *Gate) CheckAdmission(ctx context.Context, sub *model.User, now time.Time) (Decision, error) {
	month := model.MonthIndex(now)
	if sub.Usage.LastResetMonth != month {
		if err := g.store.ResetUsage(ctx, sub.ID, month); err != nil {
			return Decision{}, fmt.Errorf("%w: user %s: %w", ErrRollover, sub.ID, err)
		}
		sub.Usage.Count = 0
		sub.Usage.LastResetMonth = month
	}

	if sub.Plan.Unmetered() {
		return Decision{Admit: true, Remaining: -1}, nil
	}

	if sub.Usage.Count >= g.freeLimit {
		return Decision{
			Admit:        false,
			LimitReached: true,
			Limit:        g.freeLimit,
			Message:      fmt.Sprintf("You have used all %d free AI requests this month. Upgrade to premium for unlimited access.", g.freeLimit),
		}, nil
	}

	return Decision{Admit: true, Limit: g.freeLimit, Remaining: g.freeLimit - sub.Usage.Count}, nil
}

// RecordUsage counts one completed metered request. Failures are logged, never returned.
func (g *Gate) RecordUsage(ctx context.Context, userID uuid.UUID) {
	if err := g.store.IncrementUsage(ctx, userID); err != nil {
		log.Printf("usage: failed to record usage for user %s: %v", userID, err)
	}
}

// Status reports the quota of sub at now without persisting anything.
func (g *Gate) Status(sub *model.User, now time.Time) Quota {
	used := sub.Usage.Count
	if sub.Usage.LastResetMonth != model.MonthIndex(now) {
		used = 0
	}
	if sub.Plan.Unmetered() {
		return Quota{Plan: sub.Plan, Used: used, Limit: -1, Remaining: -1, Unlimited: true}
	}
	return Quota{
		Plan:      sub.Plan,
		Used:      used,
		Limit:     g.freeLimit,
		Remaining: max(g.freeLimit-used, 0),
	}
}
