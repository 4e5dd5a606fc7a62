package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Options are the process-level settings shared by every topicbot binary.
// Each binary embeds Options in its own flag struct.
type Options struct {
	FeedsPath  string `long:"feeds" env:"TOPICBOT_FEEDS" default:"config/feeds.json" description:"Feed registry file (.json, .yaml or .yml)"`
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"content" description:"Directory of published markdown content"`

	PrimaryLang   string `long:"primary-lang" env:"PRIMARY_LANG" default:"ja" description:"Language that receives the primary share of the ratio"`
	SecondaryLang string `long:"secondary-lang" env:"SECONDARY_LANG" default:"en" description:"Language that receives the secondary share of the ratio"`

	HistoryBackend string `long:"history-backend" env:"HISTORY_BACKEND" default:"file" choice:"file" choice:"sqlite" choice:"s3" description:"Where the topic history is stored"`
	HistoryFile    string `long:"history-file" env:"HISTORY_FILE" default:"config/topics_history.json" description:"History file for the file backend"`
	SQLitePath     string `long:"sqlite-path" env:"SQLITE_PATH" default:"topicbot.db" description:"Database file for the sqlite backend"`

	S3Bucket       string `long:"s3-bucket" env:"S3_BUCKET" description:"Bucket for the s3 history backend"`
	S3Prefix       string `long:"s3-prefix" env:"S3_PREFIX" description:"Key prefix inside the bucket"`
	S3Region       string `long:"s3-region" env:"S3_REGION" description:"AWS region"`
	S3Profile      string `long:"s3-profile" env:"S3_PROFILE" description:"AWS shared config profile"`
	S3UsePathStyle bool   `long:"s3-path-style" env:"S3_USE_PATH_STYLE" description:"Use path-style S3 addressing"`

	RedisAddr string        `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address; enables the distributed lock and published-slug registry"`
	RedisPass string        `long:"redis-pass" env:"REDIS_PASS" description:"Redis password"`
	RedisDB   int           `long:"redis-db" env:"REDIS_DB" default:"0" description:"Redis database"`
	LockKey   string        `long:"lock-key" env:"LOCK_KEY" default:"topicbot:history:lock" description:"Redis key guarding the history"`
	LockTTL   time.Duration `long:"lock-ttl" env:"LOCK_TTL" default:"2m" description:"Expiry of the history lock"`
	IndexKey  string        `long:"index-key" env:"INDEX_KEY" default:"topicbot:published" description:"Redis set of published slugs"`

	KafkaBrokers  []string `long:"kafka-broker" env:"KAFKA_BOOTSTRAP_SERVERS" env-delim:"," description:"Kafka brokers; enables topic publishing"`
	TopicsTopic   string   `long:"kafka-topics-topic" env:"KAFKA_TOPICS_TOPIC" default:"topics.discovered" description:"Topic selected topics are published to"`
	RequestsTopic string   `long:"kafka-requests-topic" env:"KAFKA_REQUESTS_TOPIC" default:"topics.discover-requests" description:"Topic discovery requests are consumed from"`
	GroupID       string   `long:"kafka-group" env:"KAFKA_GROUP_ID" default:"topicbot-discovery" description:"Kafka consumer group"`

	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`
	Pretty   bool   `long:"pretty" env:"LOG_PRETTY" description:"Human readable console logs"`
}

// S3Enabled reports whether an S3 bucket was configured
func (o *Options) S3Enabled() bool { return strings.TrimSpace(o.S3Bucket) != "" }

// RedisEnabled reports whether a Redis address was configured
func (o *Options) RedisEnabled() bool { return strings.TrimSpace(o.RedisAddr) != "" }

// KafkaEnabled reports whether Kafka brokers were configured
func (o *Options) KafkaEnabled() bool { return len(o.KafkaBrokers) > 0 }

// Parse fills opts from command-line arguments and the environment.
// It returns false when the user asked for help and the process should exit.
func Parse(opts interface{}, args []string) (bool, error) {
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return false, nil
		}
		return false, fmt.Errorf("failed to parse options: %w", err)
	}
	return true, nil
}
