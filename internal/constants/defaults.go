package constants

// Scanner defaults.
const (
	DefaultMaxMessagesPerGroup = 200
	DefaultGroupDelayMs        = 1000
	DefaultFetchTimeoutSec     = 30

	// Milestones inside a history scan.
	StatsUpdateEvery = 10
	CheckpointEvery  = 50
)

// Store defaults.
const (
	DefaultCheckpointIntervalSec = 300
	SnapshotFileMode             = 0600
)

// Relevance filter.
const MinCandidateLength = 30

// Phone normalization.
const (
	LocalPhoneLength  = 10
	LocalPhonePrefix  = "05"
	CountryCodeDigits = "966"
)

// Price magnitude window: a magnitude word counts if it starts no further
// than this many positions past the end of the numeric match.
const MagnitudeWindowOffset = 10

// Location pattern fallback bounds (runes, exclusive).
const (
	LocationMinLength = 2
	LocationMaxLength = 30
)

// Server defaults.
const (
	DefaultServerPort          = 3000
	DefaultGracefulShutdownSec = 30
	ServerReadTimeoutSec       = 15
	ServerWriteTimeoutSec      = 60
	ServerIdleTimeoutSec       = 60
)

// WhatsApp client defaults.
const (
	DefaultWhatsAppTimeoutSec  = 30
	DefaultSessionReadyWaitSec = 120
)

// Encryption parameters for the offer archive (AES-256-GCM).
const (
	EncryptionSalt       = "aqarscan-archive-salt-v1"
	EncryptionLookupSalt = "aqarscan-lookup-salt-v1"
	EncryptionKeySize    = 32
	EncryptionNonceSize  = 12
	EncryptionIterations = 100000
	MinEncryptionSecret  = 32
)

// Timestamp layout used for offer provenance.
const OfferTimestampLayout = "2006-01-02 15:04:05"
