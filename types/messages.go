package types

// TopicMessage is published to Kafka for every selected topic
type TopicMessage struct {
	RunID string      `json:"run_id"`
	Slug  string      `json:"slug"`
	Topic ScoredTopic `json:"topic"`
}

// DiscoverRequest asks the service to start a discovery run
type DiscoverRequest struct {
	Count int `json:"count"`
}
