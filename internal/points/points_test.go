package points

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hatakou1021-design/sns-site/internal/kv"
	"github.com/hatakou1021-design/sns-site/internal/kv/memkv"
)

const email = "hanako@example.com"

// movableClock lets a test advance the simulated date between calls.
type movableClock struct {
	at time.Time
}

func (c *movableClock) now() time.Time { return c.at }

func newLedger(start time.Time) (*Ledger, *movableClock) {
	clock := &movableClock{at: start}
	return NewWithClock(memkv.New(), clock.now, time.UTC), clock
}

func TestAwardDailyBonus_OncePerDay(t *testing.T) {
	l, clock := newLedger(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := l.AwardDailyBonus(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Awarded || first.TotalPoints != DailyBonus {
		t.Fatalf("first call: expected awarded=true total=%d, got %+v", DailyBonus, first)
	}

	// later the same day
	clock.at = clock.at.Add(8 * time.Hour)
	second, err := l.AwardDailyBonus(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if second.Awarded || second.TotalPoints != DailyBonus {
		t.Fatalf("second call: expected awarded=false total unchanged, got %+v", second)
	}

	// next calendar day
	clock.at = clock.at.Add(24 * time.Hour)
	third, err := l.AwardDailyBonus(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if !third.Awarded || third.TotalPoints != 2*DailyBonus {
		t.Fatalf("third call: expected awarded=true total=%d, got %+v", 2*DailyBonus, third)
	}
}

func TestAwardDailyBonus_MidnightRollover(t *testing.T) {
	l, clock := newLedger(time.Date(2025, 4, 1, 23, 59, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := l.AwardDailyBonus(ctx, email); err != nil {
		t.Fatal(err)
	}

	// two minutes later it is a new calendar day
	clock.at = clock.at.Add(2 * time.Minute)
	award, err := l.AwardDailyBonus(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if !award.Awarded {
		t.Error("expected a fresh award after midnight")
	}
}

func TestAwardDailyBonus_PerAccount(t *testing.T) {
	l, _ := newLedger(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := l.AwardDailyBonus(ctx, "a@x.com"); err != nil {
		t.Fatal(err)
	}
	award, err := l.AwardDailyBonus(ctx, "b@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if !award.Awarded {
		t.Error("awards must be tracked per account")
	}
}

func TestAwardDailyBonus_ConcurrentCallsAwardOnce(t *testing.T) {
	l, _ := newLedger(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	const callers = 8
	awards := make(chan Award, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := l.AwardDailyBonus(ctx, email)
			if err != nil {
				t.Error(err)
				return
			}
			awards <- a
		}()
	}
	wg.Wait()
	close(awards)

	awarded := 0
	for a := range awards {
		if a.Awarded {
			awarded++
		}
	}
	if awarded != 1 {
		t.Errorf("expected exactly one award, got %d", awarded)
	}
	if total := l.Total(ctx, email); total != DailyBonus {
		t.Errorf("expected total %d, got %d", DailyBonus, total)
	}
}

// keyFailingStore rejects writes to a single key, leaving the rest of the
// backend working.
type keyFailingStore struct {
	*memkv.MemStore
	failKey string
}

func (s *keyFailingStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return kv.ErrInternal
	}
	return s.MemStore.Set(ctx, key, value)
}

func TestAwardDailyBonus_TotalWriteFailureDoesNotDoubleAward(t *testing.T) {
	store := &keyFailingStore{MemStore: memkv.New(), failKey: "sns-points:" + email}
	clock := &movableClock{at: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
	l := NewWithClock(store, clock.now, time.UTC)
	ctx := context.Background()

	if _, err := l.AwardDailyBonus(ctx, email); err != nil {
		t.Fatal(err)
	}

	// the award date landed even though the total write failed, so a retry
	// on the same day stays a no-op
	clock.at = clock.at.Add(time.Hour)
	second, err := l.AwardDailyBonus(ctx, email)
	if err != nil {
		t.Fatal(err)
	}
	if second.Awarded {
		t.Error("expected no second award on the same day")
	}
}

func TestAwardDailyBonus_EmptyEmail(t *testing.T) {
	l, _ := newLedger(time.Now())
	_, err := l.AwardDailyBonus(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTotal_MalformedValueTreatedAsZero(t *testing.T) {
	store := memkv.New()
	ctx := context.Background()
	if err := store.Set(ctx, "sns-points:"+email, "not a number"); err != nil {
		t.Fatal(err)
	}

	l := NewWithClock(store, time.Now, time.UTC)
	if total := l.Total(ctx, email); total != 0 {
		t.Errorf("expected 0, got %d", total)
	}
}

func TestTotal_EmailNormalized(t *testing.T) {
	l, _ := newLedger(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := l.AwardDailyBonus(ctx, "Hanako@Example.com"); err != nil {
		t.Fatal(err)
	}
	if total := l.Total(ctx, "hanako@example.com"); total != DailyBonus {
		t.Errorf("expected %d, got %d", DailyBonus, total)
	}
}
