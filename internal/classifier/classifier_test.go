package classifier

import (
	"strings"
	"testing"

	"github.com/credlens/credlens/internal/model"
)

func raw(status string) model.RawItem {
	return model.RawItem{
		CreditorName:    "ACME BANK",
		AccountIDMasked: "****1234",
		AccountType:     model.Unknown,
		StatusText:      status,
		DateOpened:      model.Unknown,
		DateReported:    model.Unknown,
		Bureaus:         model.NewBureauSet(model.TransUnion),
		SectionKind:     model.SectionUnknown,
	}
}

func TestClassify_Precedence(t *testing.T) {
	cases := []struct {
		name string
		item model.RawItem
		want model.ItemType
	}{
		{"inquiry marker wins over everything", func() model.RawItem {
			r := raw("Collection")
			r.InquiryMarker = true
			return r
		}(), model.ItemInquiry},
		{"collection status", raw("Placed for collection"), model.ItemCollection},
		{"collection section kind", func() model.RawItem {
			r := raw(model.Unknown)
			r.SectionKind = model.SectionCollections
			return r
		}(), model.ItemCollection},
		{"collection beats charge-off", raw("Charged off, sold to collection agency"), model.ItemCollection},
		{"charge off", raw("Charged off as bad debt"), model.ItemChargeOff},
		{"charge-off hyphenated", raw("Charge-off"), model.ItemChargeOff},
		{"bankruptcy", func() model.RawItem {
			r := raw(model.Unknown)
			r.AccountType = "Chapter 7 Bankruptcy"
			return r
		}(), model.ItemPublicRecord},
		{"public records section", func() model.RawItem {
			r := raw(model.Unknown)
			r.SectionKind = model.SectionPublicRecords
			return r
		}(), model.ItemPublicRecord},
		{"late payment", raw("30 days past due"), model.ItemLatePayment},
		{"delinquent", raw("Delinquent"), model.ItemLatePayment},
		{"clean tradeline", raw("Pays as agreed"), model.ItemTradeline},
		{"negated lateness is clean", raw("Paid as agreed, never late"), model.ItemTradeline},
		{"never late alone is clean", raw("Never late"), model.ItemTradeline},
		{"unknown status is neutral", raw(model.Unknown), model.ItemTradeline},
	}

	for _, c := range cases {
		got, _ := classify(c.item)
		if got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestClassify_NegativeReasons(t *testing.T) {
	items, _, err := Classify([]model.RawItem{
		raw("Placed for collection"),
		raw("Pays as agreed"),
		raw("Paid as agreed, never late"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !items[0].Negative() || items[0].NegativeReason != "collection account" {
		t.Errorf("Expected negative collection item, got %+v", items[0])
	}
	if items[1].Negative() {
		t.Errorf("Expected clean tradeline to be neutral, got %+v", items[1])
	}
	if items[2].Negative() || items[2].NegativeReason != "" {
		t.Errorf("Expected negated-lateness status to be neutral, got %+v", items[2])
	}
}

func TestClassify_DeterministicRefs(t *testing.T) {
	in := []model.RawItem{raw("Collection"), raw("Pays as agreed"), raw("Charge-off")}
	items, _, err := Classify(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	wantRefs := []string{"item-001", "item-002", "item-003"}
	for i, want := range wantRefs {
		if items[i].Ref != want {
			t.Errorf("Item %d: expected ref %s, got %s", i, want, items[i].Ref)
		}
	}

	again, _, _ := Classify(in)
	for i := range items {
		if items[i].Ref != again[i].Ref || items[i].ItemType != again[i].ItemType {
			t.Errorf("Expected identical classification across runs at %d", i)
		}
	}
}

func TestClassify_AllThreeFallback(t *testing.T) {
	noBureaus := raw("Collection")
	noBureaus.Bureaus = nil

	items, warnings, err := Classify([]model.RawItem{noBureaus, raw("Collection")})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items[0].Bureaus) != 3 || !items[0].BureausAssumed {
		t.Errorf("Expected all-three fallback with assumed flag, got %s assumed=%v",
			items[0].Bureaus, items[0].BureausAssumed)
	}
	if items[1].BureausAssumed {
		t.Errorf("Expected attributed item not to be flagged assumed")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "1 item could not be bureau-disambiguated") {
		t.Errorf("Expected a single fallback warning, got %v", warnings)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	items, warnings, err := Classify(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 0 || len(warnings) != 0 {
		t.Errorf("Expected empty output, got %d items %d warnings", len(items), len(warnings))
	}
}
