package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/growthrule/pacewatch/pkg/types"
)

// SQSAPI is the subset of the SQS client used by SQSSink.
type SQSAPI interface {
	SendMessage(ctx context.Context, input *sqs.SendMessageInput, opts ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSSink enqueues alerts on an SQS queue for asynchronous handling by the
// ops tooling.
type SQSSink struct {
	client   SQSAPI
	queueURL string
}

// SQSSinkOption configures an SQSSink.
type SQSSinkOption func(*SQSSink)

// WithSQSClient sets a custom SQS client (useful for testing).
func WithSQSClient(c SQSAPI) SQSSinkOption {
	return func(s *SQSSink) { s.client = c }
}

// NewSQSSink creates a new SQS alert sink.
func NewSQSSink(queueURL string, opts ...SQSSinkOption) (*SQSSink, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("SQS queue URL required")
	}
	s := &SQSSink{queueURL: queueURL}
	for _, o := range opts {
		o(s)
	}
	if s.client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		s.client = sqs.NewFromConfig(cfg)
	}
	return s, nil
}

// Name returns the sink identifier.
func (s *SQSSink) Name() string { return "sqs" }

// Send enqueues the alert as JSON.
func (s *SQSSink) Send(alert types.OpsAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshaling alert: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(data)),
	})
	if err != nil {
		return fmt.Errorf("enqueueing on SQS: %w", err)
	}

	return nil
}
