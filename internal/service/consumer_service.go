// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/pkg/agent/executor"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// pollingRunKey is the shared run id for background analysis, so the
// digest runs reuse one checkpoint slot instead of piling up.
const pollingRunKey = "system_polling"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the integration-updates topic: each message is
// a batch of unseen updates that gets analyzed by the workspace
// pipeline and logged to the activity feed.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	executor  *executor.Executor
	activity  IActivityService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	agentExecutor *executor.Executor,
	activity IActivityService,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		executor:  agentExecutor,
		activity:  activity,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IntegrationUpdatesMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal updates message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if len(payload.Updates) == 0 {
		msg.Ack()
		return
	}

	log.Printf("[INFO] Analyzing %d integration updates", len(payload.Updates))

	lines := make([]string, 0, len(payload.Updates))
	for _, u := range payload.Updates {
		lines = append(lines, fmt.Sprintf("- [%s] %s (%s)", u.Source, u.Message, u.Timestamp))
	}
	prompt := fmt.Sprintf(
		"Here is some new activity from my connected applications:\n%s\n"+
			"Analyze these updates. If anything is urgent or requires action, highlight it. "+
			"Keep your summary concise.",
		strings.Join(lines, "\n"),
	)

	digest := "Rate limit reached. Activity logged without AI summary."
	result, err := cs.executor.Run(ctx, prompt, "workspace", pollingRunKey)
	if err != nil {
		log.Printf("[WARN] AI analysis failed: %v", err)
	} else {
		digest = result.Summary
	}

	cs.activity.Append(ctx, &entity.ActivityEntry{
		Action:  fmt.Sprintf("Found %d new updates across integrations", len(payload.Updates)),
		Source:  "system",
		Mode:    "workspace",
		Details: truncateText(digest, 200),
	})

	log.Printf("[INFO] Background update processing complete")
	msg.Ack()
}
