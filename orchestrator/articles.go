package orchestrator

import (
	"context"
	"sort"
	"time"

	"topicbot/config"
	"topicbot/types"
)

// LangAuto picks the summary language from the current date
const LangAuto = "auto"

// SummaryLanguage alternates between the primary and secondary language by
// the day of month in JST: even days use the primary one
func (p *Pipeline) SummaryLanguage(now time.Time) string {
	if now.In(config.JST).Day()%2 == 0 {
		return p.ratio.PrimaryLang
	}
	return p.ratio.SecondaryLang
}

// TopArticles returns up to count source articles from the heaviest feeds.
// lang restricts feeds to one language; empty means any and LangAuto
// resolves through SummaryLanguage. withText extracts readable body text.
func (p *Pipeline) TopArticles(ctx context.Context, count int, lang string, withText bool) ([]*types.SourceArticle, error) {
	if count <= 0 {
		count = config.DefaultArticleCount
	}
	if lang == LangAuto {
		lang = p.SummaryLanguage(p.now())
	}

	var feeds []types.FeedSource
	for _, f := range p.registry.Feeds {
		if lang == "" || f.Language == lang {
			feeds = append(feeds, f)
		}
	}

	var articles []*types.SourceArticle
	for _, b := range p.fetcher.FetchAll(ctx, feeds) {
		taken := 0
		for _, e := range b.Entries {
			if taken == config.ArticlesPerFeed {
				break
			}
			taken++
			if e.Link == "" || e.Title == "" {
				continue
			}
			articles = append(articles, &types.SourceArticle{
				ID:       types.GenerateID(e.Link),
				Title:    e.Title,
				URL:      e.Link,
				Lang:     b.Source.Language,
				Category: b.Source.Category,
				Feed:     b.Source.Name,
				Weight:   b.Source.Weight,
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool { return articles[i].Weight > articles[j].Weight })
	if len(articles) > count {
		articles = articles[:count]
	}

	if withText && p.extractor != nil {
		p.extractor.ExtractAll(articles)
	}
	p.logger.Info().Int("articles", len(articles)).Str("lang", lang).Msg("Selected source articles")
	return articles, nil
}
