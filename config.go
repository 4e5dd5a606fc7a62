package main

import (
	"topicbot/config"
)

// serverOptions are the flags of the topicbot service
type serverOptions struct {
	config.Options

	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP API port"`
	Schedule string `long:"cron" env:"DISCOVER_CRON" default:"0 6 * * *" description:"Cron schedule for automated runs, Tokyo time"`
	NoCron   bool   `long:"no-cron" env:"DISABLE_CRON" description:"Disable scheduled runs"`
	Count    int    `short:"n" long:"count" env:"DISCOVER_COUNT" default:"3" description:"Topics selected per scheduled or queued run"`
	Consume  bool   `long:"consume" env:"KAFKA_CONSUME" description:"Serve discovery requests from Kafka"`
}
