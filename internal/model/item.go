package model

import (
	"sort"
	"strings"
)

// Unknown is the explicit placeholder for a field the extractor could not
// determine. Fields are never silently defaulted to a plausible-looking
// value; the output feeds legal documents.
const Unknown = "unknown"

// Bureau is one of the three major consumer reporting agencies.
type Bureau string

const (
	Equifax    Bureau = "Equifax"
	Experian   Bureau = "Experian"
	TransUnion Bureau = "TransUnion"
)

// AllBureaus lists every bureau in canonical order.
var AllBureaus = []Bureau{Equifax, Experian, TransUnion}

// BureauSet is a set of bureaus reporting an item. Kept as a sorted slice so
// JSON output is deterministic.
type BureauSet []Bureau

// NewBureauSet builds a deduplicated, canonically ordered set.
func NewBureauSet(bureaus ...Bureau) BureauSet {
	seen := map[Bureau]bool{}
	var out BureauSet
	for _, b := range bureaus {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether b is in the set.
func (s BureauSet) Contains(b Bureau) bool {
	for _, have := range s {
		if have == b {
			return true
		}
	}
	return false
}

// Union returns the canonical union of two sets.
func (s BureauSet) Union(other BureauSet) BureauSet {
	return NewBureauSet(append(append(BureauSet{}, s...), other...)...)
}

// String renders the set as "Equifax,Experian".
func (s BureauSet) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = string(b)
	}
	return strings.Join(parts, ",")
}

// ItemType classifies a credit item. Every item gets exactly one type; the
// classifier's precedence order guarantees it.
type ItemType string

const (
	ItemTradeline    ItemType = "tradeline"
	ItemLatePayment  ItemType = "late_payment"
	ItemCollection   ItemType = "collection"
	ItemChargeOff    ItemType = "charge_off"
	ItemPublicRecord ItemType = "public_record"
	ItemInquiry      ItemType = "inquiry"
)

// ItemTypes lists every valid item type.
var ItemTypes = []ItemType{
	ItemTradeline, ItemLatePayment, ItemCollection,
	ItemChargeOff, ItemPublicRecord, ItemInquiry,
}

// Valid reports whether t is one of the six item types.
func (t ItemType) Valid() bool {
	for _, v := range ItemTypes {
		if t == v {
			return true
		}
	}
	return false
}

// RawItem is one account/inquiry/record observation pulled out of a document
// section before classification and bureau reconciliation. When a tri-merge
// layout presents per-bureau columns, each column becomes its own RawItem.
type RawItem struct {
	// CreditorName as printed in the report, or Unknown.
	CreditorName string `json:"creditor_name"`

	// AccountIDMasked is the masked account number (e.g. "****1234"), or Unknown.
	AccountIDMasked string `json:"account_id_masked"`

	// AccountType is the account/type text (e.g. "Collection", "Credit Card"), or Unknown.
	AccountType string `json:"account_type"`

	// StatusText is the payment/account status text, or Unknown.
	StatusText string `json:"status_text"`

	// Balance is the reported balance in dollars; meaningful only when
	// BalanceKnown is true.
	Balance float64 `json:"balance"`

	// BalanceKnown is false when the balance could not be extracted.
	BalanceKnown bool `json:"balance_known"`

	// DateOpened is the normalized open date ("2006-01-02", "2006-01" or
	// Unknown).
	DateOpened string `json:"date_opened"`

	// DateReported is the normalized last-reported date, or Unknown.
	DateReported string `json:"date_reported"`

	// Bureaus the observation is attributed to. Empty when the document gave
	// no per-bureau markers; the classifier applies the all-three fallback
	// and the run records a warning.
	Bureaus BureauSet `json:"bureaus,omitempty"`

	// InquiryMarker is true when the section or row explicitly marks this as
	// a credit inquiry.
	InquiryMarker bool `json:"inquiry_marker"`

	// IdentityTheftMarker is true when the row carries an identity-theft or
	// fraud-block annotation.
	IdentityTheftMarker bool `json:"identity_theft_marker"`

	// SectionKind is the logical section the item came from.
	SectionKind SectionKind `json:"section_kind"`
}

// CreditItem is the canonical reported item after classification and bureau
// reconciliation. Never mutated after creation; a later dispute round produces
// new instances, preserving historical evidence.
type CreditItem struct {
	// Ref is a deterministic identifier within one analysis run ("item-003").
	// Violations reference items by Ref.
	Ref string `json:"ref"`

	// CreditorName as printed in the report, or Unknown.
	CreditorName string `json:"creditor_name"`

	// AccountIDMasked is the masked account number, or Unknown.
	AccountIDMasked string `json:"account_id_masked"`

	// ItemType is the single classification for this item.
	ItemType ItemType `json:"item_type"`

	// Bureaus reporting the item. Never empty.
	Bureaus BureauSet `json:"bureau_set"`

	// BureausAssumed is true when the all-three fallback was applied because
	// no per-bureau attribution was determinable. Flagged so downstream
	// reviewers know the breadth is assumed, not confirmed.
	BureausAssumed bool `json:"bureaus_assumed,omitempty"`

	// StatusText is the reported status, or Unknown.
	StatusText string `json:"status_text"`

	// Balance in dollars; meaningful only when BalanceKnown is true.
	Balance float64 `json:"balance"`

	// BalanceKnown is false when no balance was extracted.
	BalanceKnown bool `json:"balance_known"`

	// DateOpened, normalized or Unknown.
	DateOpened string `json:"date_opened"`

	// DateReported, normalized or Unknown.
	DateReported string `json:"date_reported"`

	// NegativeReason is a short explanation of why the item is negative
	// ("collection account", "charged off", ...); empty for neutral items.
	NegativeReason string `json:"negative_reason,omitempty"`

	// IdentityTheftMarker carries the raw item's fraud-block annotation.
	IdentityTheftMarker bool `json:"identity_theft_marker,omitempty"`
}

// Negative reports whether the item counts as a negative entry.
func (c CreditItem) Negative() bool {
	return c.NegativeReason != ""
}

// PersonalInfo is the consumer identity block extracted once per document.
// At most one instance per document; missing fields are Unknown, never
// guessed.
type PersonalInfo struct {
	Name           string   `json:"name"`
	AddressHistory []string `json:"address_history,omitempty"`
	SSNLast4       string   `json:"ssn_last4"`
	DateOfBirth    string   `json:"date_of_birth"`
}

// NewPersonalInfo returns a PersonalInfo with every field explicitly unknown.
func NewPersonalInfo() PersonalInfo {
	return PersonalInfo{
		Name:        Unknown,
		SSNLast4:    Unknown,
		DateOfBirth: Unknown,
	}
}
