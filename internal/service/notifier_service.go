package service

import (
	"context"
	"fmt"

	"techgear-support-be/internal/pkg/logger"
	"techgear-support-be/internal/pkg/mailer"
	"techgear-support-be/pkg/events"
	pktNats "techgear-support-be/pkg/nats"
)

type INotifierService interface {
	Start() error
}

// notifierService forwards escalation events from the bus to the support
// inbox so a human picks up what the bot could not answer.
type notifierService struct {
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	supportInbox string
	logger       logger.ILogger
}

func NewNotifierService(
	subscriber *pktNats.Subscriber,
	emailService mailer.IEmailService,
	supportInbox string,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		subscriber:   subscriber,
		emailService: emailService,
		supportInbox: supportInbox,
		logger:       log,
	}
}

func (s *notifierService) Start() error {
	subject := fmt.Sprintf("events.%s", events.EscalationEventType)
	return s.subscriber.Subscribe(subject, "escalation-mailer", s.handle)
}

func (s *notifierService) handle(_ context.Context, event events.Event) error {
	payload := event.Payload()

	sessionID, _ := payload["session_id"].(string)
	query, _ := payload["query"].(string)
	category, _ := payload["category"].(string)

	s.logger.Info("notifier", "escalation received", map[string]interface{}{
		"session_id": sessionID,
		"category":   category,
	})

	if err := s.emailService.SendEscalationAlert(s.supportInbox, sessionID, query, category); err != nil {
		s.logger.Error("notifier", "failed to send escalation alert", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
