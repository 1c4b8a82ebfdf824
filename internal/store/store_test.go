package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/credlens/credlens/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&Config{Path: filepath.Join(t.TempDir(), "test.db")}, nil)
	if err != nil {
		t.Fatalf("Expected store to open, got %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult(fingerprint string) *model.AnalysisResult {
	return &model.AnalysisResult{
		Fingerprint:  fingerprint,
		Strategy:     "identityiq",
		PersonalInfo: model.NewPersonalInfo(),
		Items: []model.CreditItem{{
			Ref:             "item-001",
			CreditorName:    "MIDLAND CREDIT MGMT",
			AccountIDMasked: "****1234",
			ItemType:        model.ItemCollection,
			Bureaus:         model.NewBureauSet(model.AllBureaus...),
			StatusText:      "Collection",
			Balance:         500,
			BalanceKnown:    true,
			DateOpened:      "2019-06-15",
			DateReported:    "2023-01-10",
			NegativeReason:  "collection account",
		}},
		Violations: []model.Violation{{
			ItemRef:        "item-001",
			FCRASection:    model.Section611,
			Type:           model.ViolationRepeatedNonResponse,
			Willful:        true,
			StatutoryRange: model.Section611.Range(),
			Description:    "no reinvestigation response after 2 dispute(s)",
		}},
		Score: model.CaseScore{Score: 7, Strength: model.StrengthStrong},
	}
}

func TestSaveAndGetResult(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveResult(ctx, "client-1", 2, sampleResult("fp-abc"))
	if err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	if id == "" {
		t.Fatalf("Expected a row id")
	}

	got, err := s.GetResult(ctx, id)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if got.ClientID != "client-1" || got.RoundNumber != 2 {
		t.Errorf("Expected client-1 round 2, got %s round %d", got.ClientID, got.RoundNumber)
	}
	if got.Score != 7 || got.ViolationCount != 1 {
		t.Errorf("Expected summary score 7 / 1 violation, got %d / %d", got.Score, got.ViolationCount)
	}
	if got.Result == nil || got.Result.Fingerprint != "fp-abc" {
		t.Fatalf("Expected the full result back, got %+v", got.Result)
	}
	if len(got.Result.Items) != 1 || got.Result.Items[0].CreditorName != "MIDLAND CREDIT MGMT" {
		t.Errorf("Expected the stored item back, got %+v", got.Result.Items)
	}
	if len(got.Result.Violations) != 1 || !got.Result.Violations[0].Willful {
		t.Errorf("Expected the stored violation back, got %+v", got.Result.Violations)
	}
}

func TestGetResult_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetResult(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListRuns_OrderedByRoundThenTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveResult(ctx, "client-1", 1, sampleResult("fp-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveResult(ctx, "client-1", 3, sampleResult("fp-3")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveResult(ctx, "client-1", 2, sampleResult("fp-2")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveResult(ctx, "client-other", 9, sampleResult("fp-9")); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := s.ListRuns(ctx, "client-1")
	if err != nil {
		t.Fatalf("Expected list to succeed, got %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs for client-1, got %d", len(runs))
	}
	wantRounds := []int{3, 2, 1}
	for i, want := range wantRounds {
		if runs[i].RoundNumber != want {
			t.Errorf("Run %d: expected round %d, got %d", i, want, runs[i].RoundNumber)
		}
	}
}

func TestFindByFingerprint(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveResult(ctx, "client-1", 1, sampleResult("fp-same")); err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.SaveResult(ctx, "client-1", 2, sampleResult("fp-same"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.FindByFingerprint(ctx, "client-1", "fp-same")
	if err != nil {
		t.Fatalf("Expected lookup to succeed, got %v", err)
	}
	if got.ID != second {
		t.Errorf("Expected the latest run, got %s (want %s)", got.ID, second)
	}

	if _, err := s.FindByFingerprint(ctx, "client-2", "fp-same"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another client, got %v", err)
	}
}

func TestCreatedAtLayout_SortsChronologically(t *testing.T) {
	// A zero-nanosecond timestamp must not sort after one with a fraction.
	earlier := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	later := earlier.Add(500 * time.Millisecond)

	a := earlier.Format(createdAtLayout)
	b := later.Format(createdAtLayout)
	if len(a) != len(b) {
		t.Errorf("Expected fixed-width timestamps, got %q and %q", a, b)
	}
	if a >= b {
		t.Errorf("Expected %q to sort before %q", a, b)
	}

	parsed, err := time.Parse(time.RFC3339Nano, a)
	if err != nil {
		t.Fatalf("Expected stored timestamp to parse, got %v", err)
	}
	if !parsed.Equal(earlier) {
		t.Errorf("Expected round-trip %v, got %v", earlier, parsed)
	}
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	if _, err := Open(&Config{}, nil); err == nil {
		t.Errorf("Expected an error for an empty path")
	}
	if _, err := Open(nil, nil); err == nil {
		t.Errorf("Expected an error for a nil config")
	}
}
