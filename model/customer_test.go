package model_test

import (
	"testing"

	"github.com/DBD-Movie-Rental/movie-rental-main/model"
)

func summaries(ids ...int64) []model.RentalSummary {
	out := make([]model.RentalSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.RentalSummary{RentalID: id, Status: model.RentalOpen})
	}
	return out
}

func ids(cache []model.RentalSummary) []int64 {
	out := make([]int64, 0, len(cache))
	for _, s := range cache {
		out = append(out, s.RentalID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPushRecentRental_AppendsNewestLast(t *testing.T) {
	cache := summaries(1, 2)
	got := model.PushRecentRental(cache, model.RentalSummary{RentalID: 3})
	if !equalIDs(ids(got), []int64{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", ids(got))
	}
}

func TestPushRecentRental_EvictsOldest(t *testing.T) {
	cache := summaries(1, 2, 3, 4, 5)
	got := model.PushRecentRental(cache, model.RentalSummary{RentalID: 6})
	if len(got) != model.MaxRecentRentals {
		t.Fatalf("cache grew past cap: %d", len(got))
	}
	if !equalIDs(ids(got), []int64{2, 3, 4, 5, 6}) {
		t.Fatalf("got %v, want [2 3 4 5 6]", ids(got))
	}
}

func TestPushRecentRental_ReplacesSameRental(t *testing.T) {
	cache := summaries(1, 2, 3)
	got := model.PushRecentRental(cache, model.RentalSummary{RentalID: 2, Status: model.RentalReturned})
	if !equalIDs(ids(got), []int64{1, 3, 2}) {
		t.Fatalf("got %v, want [1 3 2]", ids(got))
	}
	if got[2].Status != model.RentalReturned {
		t.Fatalf("replaced entry kept stale status %s", got[2].Status)
	}
}

func TestPushRecentRental_Idempotent(t *testing.T) {
	cache := summaries(1, 2, 3, 4)
	s := model.RentalSummary{RentalID: 5}
	once := model.PushRecentRental(cache, s)
	twice := model.PushRecentRental(once, s)
	if !equalIDs(ids(once), ids(twice)) {
		t.Fatalf("re-applying the same push changed the cache: %v vs %v", ids(once), ids(twice))
	}
}
