package models

import "time"

// Item is a found item waiting in the open pool. The credential pair
// (StudentNumber, Password) is set at submission and never changed; it is
// compared verbatim when an edit is authorized.
type Item struct {
	ID            int64     `json:"id"`
	StudentNumber string    `json:"studentNumber"`
	Password      string    `json:"password"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Photo         string    `json:"photo"`
	DateSubmitted time.Time `json:"dateSubmitted"`
}

// ClaimedItem is a claim ledger record: the original item plus claimer
// identity and evidence. Ledger records are append-only.
type ClaimedItem struct {
	Item
	ClaimID        int64     `json:"claimId"`
	ClaimerStudent string    `json:"claimerStudent"`
	ClaimerName    string    `json:"claimerName"`
	ClaimerPhoto   string    `json:"claimerPhoto"`
	ClaimDate      time.Time `json:"claimDate"`
}

// UpdateItemRequest carries the editable fields of an item. The credential
// pair, when present, is verified before the update is applied.
type UpdateItemRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Location      string `json:"location"`
	StudentNumber string `json:"studentNumber,omitempty"`
	Password      string `json:"password,omitempty"`
}

// VerifyRequest is the edit verification step: the credential pair as
// supplied by the submitter.
type VerifyRequest struct {
	StudentNumber string `json:"studentNumber"`
	Password      string `json:"password"`
}
