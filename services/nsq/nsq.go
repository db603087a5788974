package nsq

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nsqio/go-nsq"
	"github.com/roysitumorang/kilau/helper"
	"go.uber.org/zap"
)

type (
	// Publisher is what the use cases need from a producer.
	Publisher interface {
		Publish(ctx context.Context, topic string, messages ...any) error
	}

	Producer struct {
		client *nsq.Producer
	}

	Consumer struct {
		client   *nsq.Consumer
		address  string
		handling bool
	}
)

func NewConfig() *nsq.Config {
	config := nsq.NewConfig()
	config.MaxAttempts = 5
	config.DefaultRequeueDelay = 5 * time.Second
	return config
}

func NewProducer(ctx context.Context, addr string, config *nsq.Config) (*Producer, error) {
	ctxt := "ServiceNSQ-NewProducer"
	client, err := nsq.NewProducer(addr, config)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrNewProducer")
		return nil, err
	}
	return &Producer{client: client}, nil
}

func (q *Producer) Ping(ctx context.Context) error {
	ctxt := "ServiceNSQ-Ping"
	err := q.client.Ping()
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrPing")
	}
	return err
}

func (q *Producer) Publish(ctx context.Context, topic string, messages ...any) error {
	ctxt := "ServiceNSQ-Publish"
	n := len(messages)
	if n == 0 {
		return nil
	}
	body := make([][]byte, n)
	for i, message := range messages {
		messageByte, err := json.Marshal(message)
		if err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrMarshal")
			return err
		}
		body[i] = messageByte
	}
	err := q.client.MultiPublish(topic, body)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrMultiPublish")
	}
	return err
}

func (q *Producer) Stop() {
	q.client.Stop()
}

func NewConsumer(ctx context.Context, address, topic, channel string, config *nsq.Config) (*Consumer, error) {
	ctxt := "ServiceNSQ-NewConsumer"
	client, err := nsq.NewConsumer(topic, channel, config)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrNewConsumer")
		return nil, err
	}
	return &Consumer{client: client, address: address}, nil
}

func (q *Consumer) AddHandler(ctx context.Context, handler nsq.HandlerFunc) error {
	ctxt := "ServiceNSQ-AddHandler"
	q.client.AddHandler(handler)
	q.handling = true
	err := q.client.ConnectToNSQD(q.address)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrConnectToNSQD")
	}
	return err
}

// Stop blocks until in-flight messages are handled. A consumer without
// handlers never closes StopChan, so there is nothing to wait for.
func (q *Consumer) Stop() {
	q.client.Stop()
	if q.handling {
		<-q.client.StopChan
	}
}
