// Package points implements the day-keyed login bonus. An account is awarded
// a fixed number of points at most once per calendar day.
package points

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hatakou1021-design/sns-site/internal/kv"
)

const (
	// DailyBonus is the number of points granted per qualifying day.
	DailyBonus = 10

	dayFormat = "2006-01-02"

	pointsKeyPrefix    = "sns-points:"
	lastLoginKeyPrefix = "sns-last-login:"
)

var ErrInvalidInput = errors.New("invalid")

type Award struct {
	Awarded     bool `json:"awarded"`
	TotalPoints int  `json:"totalPoints"`
}

type Ledger struct {
	kv  kv.Store
	now func() time.Time
	loc *time.Location

	mu sync.Mutex
}

func New(store kv.Store) *Ledger {
	return NewWithClock(store, time.Now, time.Local)
}

// NewWithClock injects the clock and the location the calendar day is
// computed in. Days roll over at local midnight of the given location.
func NewWithClock(store kv.Store, now func() time.Time, loc *time.Location) *Ledger {
	return &Ledger{kv: store, now: now, loc: loc}
}

// AwardDailyBonus grants the daily bonus if the account has not yet been
// awarded today, and reports the resulting total either way. Repeated calls
// on the same calendar day never award twice; the read-check-write is
// serialized on an internal mutex so concurrent calls cannot both qualify.
func (l *Ledger) AwardDailyBonus(ctx context.Context, email string) (Award, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Award{}, fmt.Errorf("%w: empty email", ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now().In(l.loc).Format(dayFormat)
	total := l.total(ctx, email)

	last, err := l.kv.Get(ctx, lastLoginKeyPrefix+email)
	if err != nil && !errors.Is(err, kv.ErrNotExist) {
		log.Error().Err(err).Msg("reading last award date")
		return Award{Awarded: false, TotalPoints: total}, nil
	}
	if last == today {
		return Award{Awarded: false, TotalPoints: total}, nil
	}

	// The date goes first: if only one write lands, a recorded date without
	// the total means a bonus is skipped, never granted twice.
	total += DailyBonus
	if err := l.kv.Set(ctx, lastLoginKeyPrefix+email, today); err != nil {
		log.Error().Err(err).Msg("saving last award date")
	}
	if err := l.kv.Set(ctx, pointsKeyPrefix+email, strconv.Itoa(total)); err != nil {
		log.Error().Err(err).Msg("saving points total")
	}

	return Award{Awarded: true, TotalPoints: total}, nil
}

// Total reports the current point balance for the account.
func (l *Ledger) Total(ctx context.Context, email string) int {
	return l.total(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (l *Ledger) total(ctx context.Context, email string) int {
	raw, err := l.kv.Get(ctx, pointsKeyPrefix+email)
	if errors.Is(err, kv.ErrNotExist) {
		return 0
	}
	if err != nil {
		log.Error().Err(err).Msg("reading points total")
		return 0
	}

	total, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || total < 0 {
		log.Error().Str("value", raw).Msg("malformed points total, treating as zero")
		return 0
	}
	return total
}
