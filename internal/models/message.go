package models

import "time"

// Message is the read-only input record handed to the analysis pipeline.
// It is already flattened from the messaging session's wire shape.
type Message struct {
	Text        string
	SenderID    string
	GroupName   string
	TimestampMs int64
	MessageID   string
}

// Stats are the running counters kept consistent with the offer collection.
type Stats struct {
	Total int `json:"total"`
	Sale  int `json:"sale"`
	Rent  int `json:"rent"`
	Phone int `json:"phone"`
}

// Snapshot is the persisted form of the aggregation state. Counters are not
// part of the snapshot: they are recomputed from the restored offers.
type Snapshot struct {
	Offers              []Offer   `json:"offers"`
	PhoneNumbers        []string  `json:"phoneNumbers"`
	ProcessedMessageIDs []string  `json:"processedMessageIds"`
	LastUpdated         time.Time `json:"lastUpdated"`
}

// ScanResult is returned to HTTP callers of the history scan.
type ScanResult struct {
	Count int   `json:"count"`
	Stats Stats `json:"stats"`
}
