package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topicbot/common"
	"topicbot/config"
	"topicbot/orchestrator"
	"topicbot/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

type cliOptions struct {
	config.Options

	Count        int    `short:"n" long:"count" default:"3" description:"Number of topics to discover"`
	Dump         bool   `long:"dump" description:"Print every scored entry without selecting or recording"`
	Articles     bool   `long:"articles" description:"Pick source articles for summarization instead of topics"`
	ArticleCount int    `long:"article-count" default:"2" description:"Number of source articles to pick"`
	Lang         string `long:"lang" default:"auto" description:"Article language: a language code, auto, or empty for any"`
	WithText     bool   `long:"with-text" description:"Extract article body text"`
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	itemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

func main() {
	_ = godotenv.Load()

	var opts cliOptions
	ok, err := config.Parse(&opts, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if !ok {
		return
	}
	if opts.Count < 1 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("--count must be at least 1"))
		os.Exit(2)
	}

	os.Exit(run(opts))
}

func run(opts cliOptions) int {
	logger := common.NewLogger(opts.LogLevel, opts.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := orchestrator.Build(ctx, opts.Options, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	defer app.Close()

	switch {
	case opts.Articles:
		return runArticles(ctx, app.Pipeline, opts)
	case opts.Dump:
		return runDump(ctx, app.Pipeline)
	default:
		return runDiscover(ctx, app.Pipeline, opts.Count)
	}
}

func runDiscover(ctx context.Context, p *orchestrator.Pipeline, count int) int {
	fmt.Fprintln(os.Stderr, titleStyle.Render("Discovering trending topics..."))

	res, err := p.Discover(ctx, orchestrator.Request{Count: count})
	if err != nil && !errors.Is(err, orchestrator.ErrNoTopics) {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	if err != nil || len(res.Topics) == 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("No topics discovered."))
		return 1
	}

	fmt.Fprintln(os.Stderr, titleStyle.Render(fmt.Sprintf("Discovered %d topics:", len(res.Topics))))
	for i, t := range res.Topics {
		line := fmt.Sprintf("  %d. [%s] [%s] %s (score: %.3f, source: %s)", i+1, t.Lang, t.Category, t.Keyword, t.Score, t.SourceFeed)
		fmt.Fprintln(os.Stderr, itemStyle.Render(line))
	}
	if res.HistoryError != "" {
		fmt.Fprintln(os.Stderr, infoStyle.Render("History not saved: "+res.HistoryError))
	}

	if err := writeJSON(os.Stdout, res.Topics); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	return 0
}

func runDump(ctx context.Context, p *orchestrator.Pipeline) int {
	fmt.Fprintln(os.Stderr, titleStyle.Render("Discovering trending topics..."))

	all, err := p.Dump(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
	}
	printDump(os.Stdout, all, config.DumpLimit)
	return 0
}

func printDump(w io.Writer, topics []types.ScoredTopic, limit int) {
	if len(topics) > limit {
		topics = topics[:limit]
	}
	for _, t := range topics {
		fmt.Fprintf(w, "  [%.3f] [%s] [%s] %s (%s)\n", t.Score, t.Lang, t.Category, t.Keyword, t.SourceFeed)
	}
}

func runArticles(ctx context.Context, p *orchestrator.Pipeline, opts cliOptions) int {
	lang := opts.Lang
	if lang == orchestrator.LangAuto {
		lang = p.SummaryLanguage(time.Now())
	}
	fmt.Fprintln(os.Stderr, titleStyle.Render("Picking source articles ("+langLabel(lang)+")..."))

	articles, err := p.TopArticles(ctx, opts.ArticleCount, lang, opts.WithText)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	if len(articles) == 0 {
		fmt.Fprintln(os.Stderr, errorStyle.Render("No articles found."))
		return 1
	}
	for i, a := range articles {
		fmt.Fprintln(os.Stderr, itemStyle.Render(fmt.Sprintf("  %d. [%s] %s (%s)", i+1, a.Lang, a.Title, a.Feed)))
	}

	if err := writeJSON(os.Stdout, articles); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		return 1
	}
	return 0
}

func langLabel(lang string) string {
	if lang == "" {
		return "any language"
	}
	return lang
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
