package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/logger"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
)

// SQSAPI is the subset of the SQS client used for publishing
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends route events to a queue
type SQSPublisher struct {
	client   SQSAPI
	queueURL string
}

var _ interfaces.EventPublisher = (*SQSPublisher)(nil)

// NewSQSPublisher loads the default AWS config and targets queueURL
func NewSQSPublisher(ctx context.Context, queueURL string) (*SQSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSQSPublisherWithClient(sqs.NewFromConfig(cfg), queueURL), nil
}

// NewSQSPublisherWithClient wraps an existing client
func NewSQSPublisherWithClient(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

// PublishRouteEvent sends event as JSON with its type and route id as attributes
func (p *SQSPublisher) PublishRouteEvent(ctx context.Context, event business.RouteEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal route event: %w", err)
	}

	out, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"EventType": {
				StringValue: aws.String(event.EventType),
				DataType:    aws.String("String"),
			},
			"RouteID": {
				StringValue: aws.String(event.RouteID),
				DataType:    aws.String("String"),
			},
			"Status": {
				StringValue: aws.String(string(event.Status)),
				DataType:    aws.String("String"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	logger.Log.Debug("Route event queued",
		zap.String("event_type", event.EventType),
		zap.String("route_id", event.RouteID),
		zap.String("message_id", aws.ToString(out.MessageId)),
	)
	return nil
}

// NopPublisher drops events. It is used when no queue is configured.
type NopPublisher struct{}

var _ interfaces.EventPublisher = NopPublisher{}

// PublishRouteEvent does nothing
func (NopPublisher) PublishRouteEvent(context.Context, business.RouteEvent) error {
	return nil
}
