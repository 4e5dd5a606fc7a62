package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"topicbot/types"

	"github.com/IBM/sarama"
)

type fakeProducer struct {
	sent []*sarama.ProducerMessage
	err  error
}

func (f *fakeProducer) SendMessages(msgs []*sarama.ProducerMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func TestTopicPublisherPublish(t *testing.T) {
	fake := &fakeProducer{}
	p := &TopicPublisher{producer: fake, topic: "topics.discovered"}

	msgs := []types.TopicMessage{
		{RunID: "r1", Slug: "go-generics", Topic: types.ScoredTopic{Keyword: "Go generics", Lang: "en", Score: 0.9}},
		{RunID: "r1", Slug: "生成ai", Topic: types.ScoredTopic{Keyword: "生成AI", Lang: "ja", Score: 0.8}},
	}
	if err := p.Publish(context.Background(), msgs); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(fake.sent) != 2 {
		t.Fatalf("sent %d messages; want 2", len(fake.sent))
	}
	first := fake.sent[0]
	if first.Topic != "topics.discovered" {
		t.Fatalf("topic = %q", first.Topic)
	}
	key, _ := first.Key.Encode()
	if string(key) != "go-generics" {
		t.Fatalf("key = %q", key)
	}
	body, _ := first.Value.Encode()
	var decoded types.TopicMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RunID != "r1" || decoded.Topic.Keyword != "Go generics" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestTopicPublisherNothingToSend(t *testing.T) {
	fake := &fakeProducer{err: errors.New("should not be called")}
	p := &TopicPublisher{producer: fake, topic: "t"}
	if err := p.Publish(context.Background(), nil); err != nil {
		t.Fatalf("Publish(nil) error: %v", err)
	}
}

func TestTopicPublisherError(t *testing.T) {
	p := &TopicPublisher{producer: &fakeProducer{err: errors.New("broker down")}, topic: "t"}
	err := p.Publish(context.Background(), []types.TopicMessage{{Slug: "x"}})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestTypedMessageHandler(t *testing.T) {
	var processed []int
	h := &TypedMessageHandler[types.DiscoverRequest]{
		Validate: func(msg *types.DiscoverRequest) bool { return msg.Count >= 0 },
		Process: func(ctx context.Context, msg *types.DiscoverRequest) error {
			if msg.Count == 99 {
				return errors.New("busy")
			}
			processed = append(processed, msg.Count)
			return nil
		},
		AlwaysMark: true,
	}

	cases := []struct {
		name     string
		message  string
		wantMark bool
		wantErr  bool
	}{
		{"valid", `{"count": 3}`, true, false},
		{"invalid json", `{"count":`, true, true},
		{"fails validation", `{"count": -1}`, true, false},
		{"process error is retried", `{"count": 99}`, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mark, err := h.HandleMessage(context.Background(), []byte(c.message))
			if mark != c.wantMark {
				t.Fatalf("mark = %v; want %v", mark, c.wantMark)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, c.wantErr)
			}
		})
	}

	if len(processed) != 1 || processed[0] != 3 {
		t.Fatalf("processed = %v; want [3]", processed)
	}
}
