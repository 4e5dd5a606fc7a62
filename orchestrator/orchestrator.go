package orchestrator

import (
	"context"
	"errors"
	"sort"
	"time"

	"topicbot/balancer"
	"topicbot/config"
	"topicbot/deduplication"
	"topicbot/history"
	"topicbot/rssfeeds"
	"topicbot/scoring"
	"topicbot/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoTopics is returned when no feed produced a single entry
var ErrNoTopics = errors.New("no topics: no entries found from any feed")

// FeedFetcher retrieves feeds for the pipeline
type FeedFetcher interface {
	FetchAll(ctx context.Context, feeds []types.FeedSource) []rssfeeds.FeedBatch
}

// IndexSource supplies extra published slugs beyond the content directory
type IndexSource interface {
	Load(ctx context.Context) (deduplication.ContentIndex, error)
}

// Publisher hands selected topics to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, msgs []types.TopicMessage) error
}

// ProgressFunc is told about each stage a run enters
type ProgressFunc func(stage State, message string)

// Request parameterizes a discovery run
type Request struct {
	RunID    string
	Count    int
	Progress ProgressFunc
}

// Result is the outcome of a discovery run
type Result struct {
	RunID        string              `json:"run_id"`
	Topics       []types.ScoredTopic `json:"topics"`
	Fetched      int                 `json:"fetched"`
	Candidates   int                 `json:"candidates"`
	Deduplicated int                 `json:"deduplicated"`
	UsedFallback bool                `json:"used_fallback"`
	HistoryError string              `json:"history_error,omitempty"`
	PublishError string              `json:"publish_error,omitempty"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   time.Time           `json:"finished_at"`
}

// Deps are the collaborators of a Pipeline. Index and Publisher are optional.
type Deps struct {
	Registry   *config.Registry
	Fetcher    FeedFetcher
	Scorer     *scoring.Scorer
	History    *history.Guarded
	ContentDir string
	Index      IndexSource
	Publisher  Publisher
	Extractor  *rssfeeds.Extractor
	Ratio      balancer.Ratio
	Logger     zerolog.Logger
}

// Pipeline runs fetch, score, filter, dedup, balance and record
type Pipeline struct {
	registry   *config.Registry
	fetcher    FeedFetcher
	scorer     *scoring.Scorer
	history    *history.Guarded
	contentDir string
	index      IndexSource
	publisher  Publisher
	extractor  *rssfeeds.Extractor
	ratio      balancer.Ratio

	// FallbackMultiplier sizes the unfiltered pool when nothing clears min_score
	FallbackMultiplier int

	now    func() time.Time
	logger zerolog.Logger
}

// New creates a Pipeline
func New(d Deps) *Pipeline {
	return &Pipeline{
		registry:           d.Registry,
		fetcher:            d.Fetcher,
		scorer:             d.Scorer,
		history:            d.History,
		contentDir:         d.ContentDir,
		index:              d.Index,
		publisher:          d.Publisher,
		extractor:          d.Extractor,
		ratio:              d.Ratio,
		FallbackMultiplier: config.FallbackMultiplier,
		now:                time.Now,
		logger:             d.Logger.With().Str("component", "pipeline").Logger(),
	}
}

// Registry returns the feed registry the pipeline runs against
func (p *Pipeline) Registry() *config.Registry { return p.registry }

// History returns the guarded history store
func (p *Pipeline) History() *history.Guarded { return p.history }

// Dump fetches and scores every feed, returning all entries by descending score
func (p *Pipeline) Dump(ctx context.Context) ([]types.ScoredTopic, error) {
	return p.scoreAll(ctx, nil)
}

// Discover runs a full selection round
func (p *Pipeline) Discover(ctx context.Context, req Request) (*Result, error) {
	progress := req.Progress
	if progress == nil {
		progress = func(State, string) {}
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	if req.Count <= 0 {
		req.Count = config.DefaultCount
	}

	log := p.logger.With().Str("run_id", req.RunID).Logger()
	res := &Result{RunID: req.RunID, Topics: []types.ScoredTopic{}, StartedAt: p.now()}

	all, err := p.scoreAll(ctx, progress)
	if err != nil {
		return nil, err
	}
	res.Fetched = len(all)

	progress(StateRanking, "Filtering by minimum score")
	settings := p.registry.Settings
	filtered := filterByScore(all, settings.MinScore)
	if len(filtered) == 0 {
		res.UsedFallback = true
		n := min(len(all), req.Count*p.FallbackMultiplier)
		filtered = all[:n]
		log.Warn().Float64("min_score", settings.MinScore).Int("using", n).Msg("No entries above minimum score; using top entries")
	}
	res.Candidates = len(filtered)

	progress(StateSelecting, "Deduplicating and balancing")
	index := p.loadIndex(ctx, log)

	histErr := p.history.Update(ctx, func(snapshot []types.HistoryRecord) []types.HistoryRecord {
		deduped := deduplication.Deduplicate(filtered, index, snapshot, settings.DedupWindowDays, p.now())
		res.Deduplicated = len(deduped)
		ratio := p.ratio
		ratio.PrimaryPct = settings.PrimaryPct()
		res.Topics = balancer.Balance(deduped, req.Count, ratio)

		progress(StateRecording, "Recording history")
		return history.NewRecords(res.Topics, p.now())
	})
	if histErr != nil {
		res.HistoryError = histErr.Error()
		log.Warn().Err(histErr).Msg("History was not persisted")
	}

	if p.publisher != nil && len(res.Topics) > 0 {
		if err := p.publisher.Publish(ctx, topicMessages(req.RunID, res.Topics)); err != nil {
			res.PublishError = err.Error()
			log.Warn().Err(err).Msg("Publishing topics failed")
		}
	}

	res.FinishedAt = p.now()
	log.Info().
		Int("fetched", res.Fetched).
		Int("candidates", res.Candidates).
		Int("deduplicated", res.Deduplicated).
		Int("selected", len(res.Topics)).
		Msg("Discovery complete")
	return res, nil
}

// scoreAll fetches every feed and scores its entries, sorted by descending score
func (p *Pipeline) scoreAll(ctx context.Context, progress ProgressFunc) ([]types.ScoredTopic, error) {
	if progress != nil {
		progress(StateFetching, "Fetching feeds")
	}
	batches := p.fetcher.FetchAll(ctx, p.registry.Feeds)

	now := p.now()
	var all []types.ScoredTopic
	for _, b := range batches {
		for _, entry := range b.Entries {
			if topic, ok := p.scorer.Score(entry, b.Source, now); ok {
				all = append(all, topic)
			}
		}
	}
	if len(all) == 0 {
		return nil, ErrNoTopics
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	return all, nil
}

func (p *Pipeline) loadIndex(ctx context.Context, log zerolog.Logger) deduplication.ContentIndex {
	index, err := deduplication.LoadContentIndex(p.contentDir, log)
	if err != nil {
		log.Warn().Err(err).Str("dir", p.contentDir).Msg("Content scan failed")
		index = make(deduplication.ContentIndex)
	}

	if p.index != nil {
		remote, err := p.index.Load(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Published-slug registry unavailable")
		} else {
			index.Merge(remote)
		}
	}
	return index
}

func filterByScore(topics []types.ScoredTopic, minScore float64) []types.ScoredTopic {
	out := make([]types.ScoredTopic, 0, len(topics))
	for _, t := range topics {
		if t.Score >= minScore {
			out = append(out, t)
		}
	}
	return out
}

func topicMessages(runID string, topics []types.ScoredTopic) []types.TopicMessage {
	msgs := make([]types.TopicMessage, len(topics))
	for i, t := range topics {
		msgs[i] = types.TopicMessage{RunID: runID, Slug: deduplication.Slugify(t.Keyword), Topic: t}
	}
	return msgs
}
