package orchestrator

import (
	"context"
	"fmt"

	"topicbot/balancer"
	"topicbot/classify"
	"topicbot/common"
	"topicbot/config"
	"topicbot/deduplication"
	"topicbot/history"
	"topicbot/rssfeeds"
	"topicbot/scoring"
	"topicbot/shared/kafka"

	"github.com/rs/zerolog"
)

// App is a fully wired pipeline together with the resources it owns
type App struct {
	Pipeline  *Pipeline
	Manager   *Manager
	Index     *deduplication.RedisIndex
	Publisher *kafka.TopicPublisher

	closers []func() error
	logger  zerolog.Logger
}

// Build wires a pipeline from options. Redis and Kafka are optional and
// are skipped with a warning when they cannot be reached.
func Build(ctx context.Context, opts config.Options, logger zerolog.Logger) (*App, error) {
	registry, err := config.LoadRegistry(opts.FeedsPath)
	if err != nil {
		return nil, err
	}

	app := &App{logger: logger.With().Str("component", "setup").Logger()}

	store, err := app.openStore(ctx, opts)
	if err != nil {
		app.Close()
		return nil, err
	}

	var locker history.Locker
	if opts.RedisEnabled() {
		index, err := deduplication.NewRedisIndex(deduplication.RedisIndexConfig{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPass,
			DB:       opts.RedisDB,
			Key:      opts.IndexKey,
		})
		if err != nil {
			app.logger.Warn().Err(err).Msg("Redis unavailable; using local lock and content directory only")
		} else {
			app.Index = index
			app.closers = append(app.closers, index.Close)
			locker = history.NewRedisLocker(index.Client(), history.RedisLockConfig{
				Key: opts.LockKey,
				TTL: opts.LockTTL,
			})
		}
	}

	if opts.KafkaEnabled() {
		publisher, err := kafka.NewTopicPublisher(opts.KafkaBrokers, opts.TopicsTopic)
		if err != nil {
			app.logger.Warn().Err(err).Msg("Kafka unavailable; topics will not be published")
		} else {
			app.Publisher = publisher
			app.closers = append(app.closers, publisher.Close)
		}
	}

	ratio := balancer.Ratio{PrimaryLang: opts.PrimaryLang, SecondaryLang: opts.SecondaryLang}
	if ratio.PrimaryLang == "" {
		ratio.PrimaryLang = config.PrimaryLanguage
	}
	if ratio.SecondaryLang == "" {
		ratio.SecondaryLang = config.SecondaryLanguage
	}

	deps := Deps{
		Registry:   registry,
		Fetcher:    rssfeeds.NewFetcher(rssfeeds.DefaultFetcherConfig(), logger),
		Scorer:     scoring.NewScorer(classify.DefaultTable(), scoring.DefaultTable()),
		History:    history.NewGuarded(store, locker),
		ContentDir: opts.ContentDir,
		Extractor:  rssfeeds.NewExtractor(config.MaxArticleChars, logger),
		Ratio:      ratio,
		Logger:     logger,
	}
	// Typed nils must not leak into the interfaces
	if app.Index != nil {
		deps.Index = app.Index
	}
	if app.Publisher != nil {
		deps.Publisher = app.Publisher
	}

	app.Pipeline = New(deps)
	app.Manager = NewManager(app.Pipeline)
	return app, nil
}

func (a *App) openStore(ctx context.Context, opts config.Options) (history.Store, error) {
	switch opts.HistoryBackend {
	case "sqlite":
		db, err := history.OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return db, nil
	case "s3":
		if !opts.S3Enabled() {
			return nil, fmt.Errorf("s3 history backend requires --s3-bucket")
		}
		client, err := common.NewS3(ctx, common.S3Config{
			Region:       opts.S3Region,
			Profile:      opts.S3Profile,
			UsePathStyle: opts.S3UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return history.NewS3Store(client, opts.S3Bucket, opts.S3Prefix), nil
	default:
		return history.NewFileStore(opts.HistoryFile), nil
	}
}

// Close releases every resource opened by Build
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn().Err(err).Msg("Close failed")
		}
	}
	a.closers = nil
}
