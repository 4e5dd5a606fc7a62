package config

import "time"

// Fetch Constants
const (
	// MaxEntriesPerFeed caps the items taken from a single feed
	MaxEntriesPerFeed = 20

	// FeedDelay is the pause between consecutive feed fetches
	FeedDelay = 1 * time.Second

	// FeedTimeout bounds a single feed request
	FeedTimeout = 30 * time.Second

	// UserAgent is sent with feed and article requests
	UserAgent = "topicbot/1.0 (+https://github.com/topicbot)"
)

// Selection Constants
const (
	// DefaultCount is the number of topics selected per run
	DefaultCount = 3

	// FallbackMultiplier sizes the unfiltered pool used when no entry clears min_score
	FallbackMultiplier = 3

	// DumpLimit is how many scored entries the dump view prints
	DumpLimit = 30

	// MaxKeywordLength is the longest keyword kept before truncation
	MaxKeywordLength = 80
)

// Settings Defaults
const (
	DefaultMinScore        = 0.3
	DefaultDedupWindowDays = 7
	DefaultPrimaryPct      = 60
	DefaultSecondaryPct    = 40

	// DefaultWeight applies to feeds that omit weight
	DefaultWeight = 1.0
)

// Language Constants
const (
	PrimaryLanguage   = "ja"
	SecondaryLanguage = "en"
)

// Source Article Constants
const (
	// ArticlesPerFeed is how many items each feed contributes to the top-articles pick
	ArticlesPerFeed = 5

	// DefaultArticleCount is the default number of source articles returned
	DefaultArticleCount = 2

	// MaxArticleChars truncates extracted article text
	MaxArticleChars = 5000
)

// JST is the zone history dates are recorded in
var JST = time.FixedZone("JST", 9*60*60)
