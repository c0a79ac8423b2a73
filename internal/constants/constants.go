package constants

import "time"

const (
	IdentityTimeout = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	IngestTimeout   = 60 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	IngestBatchSize   = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DashboardRowLimit     = 50
	TopOpponentLimit      = 5
	TopMatchLimit         = 10
	NotificationFeedLimit = 10
	AnalyticsTopPlayers   = 5

	// Players need this many sessions in a season before they qualify
	// for a handicap.
	HandicapMinSessions = 3
)

const (
	// Legs start from 501; rollup averages scale points-per-dart to a
	// three-dart turn.
	LegStartScore = 501
	DartsPerTurn  = 3

	MaxUploadBytes = 10 << 20
)
