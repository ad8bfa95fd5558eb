package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

func hasBadge(badges []string, want string) bool {
	for _, b := range badges {
		if b == want {
			return true
		}
	}
	return false
}

func TestScoreAward_UnknownEvent(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1"})
	svc := NewScoreService(users, zerolog.Nop())

	_, err := svc.Award(context.Background(), "u1", "cake_eaten")
	if !errors.Is(err, domain.ErrUnknownScoreEvent) {
		t.Errorf("got %v, want ErrUnknownScoreEvent", err)
	}
	if users.get("u1").Score != 0 {
		t.Error("rejected event must not change the score")
	}
}

func TestScoreAward_AccumulatesAndUnlocks(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Score: 45})
	svc := NewScoreService(users, zerolog.Nop())

	res, err := svc.Award(context.Background(), "u1", domain.EventGamePlayed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NewScore != 55 {
		t.Errorf("score = %d, want 55", res.NewScore)
	}
	if !hasBadge(res.Unlocked, domain.BadgeHelper) {
		t.Errorf("unlocked = %v, want helper at 50 points", res.Unlocked)
	}

	res, err = svc.Award(context.Background(), "u1", domain.EventGameWon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NewScore != 105 {
		t.Errorf("score = %d, want 105", res.NewScore)
	}
	if !hasBadge(res.Unlocked, domain.BadgeSuperstar) {
		t.Errorf("unlocked = %v, want superstar at 100 points", res.Unlocked)
	}
	if hasBadge(res.Unlocked, domain.BadgeHelper) {
		t.Error("helper was already earned, must not unlock twice")
	}
	if !hasBadge(res.Badges, domain.BadgeHelper) {
		t.Error("earlier badge missing from merged set")
	}
}

func TestScoreAward_StoredBadgeNeverRevoked(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Score: 10, Badges: []string{domain.BadgeChampion}})
	svc := NewScoreService(users, zerolog.Nop())

	res, err := svc.Award(context.Background(), "u1", domain.EventPostCreated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasBadge(res.Badges, domain.BadgeChampion) {
		t.Errorf("badges = %v, stored champion must survive a low score", res.Badges)
	}
}

func TestScoreAward_GamerBadgeAfterFiveGames(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1"})
	svc := NewScoreService(users, zerolog.Nop())

	var last []string
	for i := 0; i < 5; i++ {
		out, err := svc.Award(context.Background(), "u1", domain.EventGamePlayed)
		if err != nil {
			t.Fatalf("award %d: %v", i, err)
		}
		last = out.Badges
	}
	if !hasBadge(last, domain.BadgeGamer) {
		t.Errorf("badges = %v, want gamer after 5 games", last)
	}
}

func TestScoreAward_Concurrent(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1"})
	svc := NewScoreService(users, zerolog.Nop())

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Award(context.Background(), "u1", domain.EventGamePlayed); err != nil {
				t.Errorf("award: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := users.get("u1").Score; got != n*10 {
		t.Errorf("score = %d, want %d, concurrent awards must not lose updates", got, n*10)
	}
}

func TestScoreAward_ConcurrentUnlockNotDropped(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "u1", Score: 45})
	svc := NewScoreService(users, zerolog.Nop())

	// Another award lands its badge between this award's profile read and
	// its badge persist. The persist must not wipe it.
	users.afterFind = func() {
		u := users.users["u1"]
		if !hasBadge(u.Badges, domain.BadgeChampion) {
			u.Badges = append(u.Badges, domain.BadgeChampion)
		}
	}

	res, err := svc.Award(context.Background(), "u1", domain.EventGamePlayed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasBadge(res.Unlocked, domain.BadgeHelper) {
		t.Fatalf("unlocked = %v, want helper at 55 points", res.Unlocked)
	}

	stored := users.get("u1")
	if !hasBadge(stored.Badges, domain.BadgeChampion) {
		t.Errorf("badges = %v, concurrently earned champion was dropped", stored.Badges)
	}
	if !hasBadge(stored.Badges, domain.BadgeHelper) {
		t.Errorf("badges = %v, own unlock missing", stored.Badges)
	}
}

func TestScoreLeaderboard_ClampsLimit(t *testing.T) {
	users := newStubUserRepo()
	users.add(&domain.User{ID: "a", Score: 30})
	users.add(&domain.User{ID: "b", Score: 10})
	users.add(&domain.User{ID: "c", Score: 20})
	svc := NewScoreService(users, zerolog.Nop())

	got, err := svc.Leaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.lastListLimit != maxLeaderboardSize {
		t.Errorf("limit = %d, want clamp to %d", users.lastListLimit, maxLeaderboardSize)
	}
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "c" || got[2].ID != "b" {
		t.Errorf("order = %v, want score descending", []string{got[0].ID, got[1].ID, got[2].ID})
	}

	if _, err := svc.Leaderboard(context.Background(), 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.lastListLimit != maxLeaderboardSize {
		t.Errorf("limit = %d, oversized request must clamp", users.lastListLimit)
	}
}
