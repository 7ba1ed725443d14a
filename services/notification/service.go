package notification

import (
	"context"

	accountRepo "fixhub/database/repository/account"
	"fixhub/services/tasks"
	"fixhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueNotificationService enqueues messages on the mail queue; the worker
// in the cron package drains it. Enqueue failures are logged and dropped.
type QueueNotificationService struct {
	Accounts accountRepo.AccountRepository
	Client   *asynq.Client
}

func (s *QueueNotificationService) NotifyClient(ctx context.Context, clientID, subject, body string) {
	c, err := s.Accounts.GetClient(clientID)
	if err != nil {
		utils.GetLogger().Warn("notify: client lookup failed",
			zap.String("clientId", clientID), zap.Error(err))
		return
	}
	s.enqueue(ctx, c.Email, subject, body)
}

func (s *QueueNotificationService) NotifyProvider(ctx context.Context, providerID, subject, body string) {
	p, err := s.Accounts.GetProvider(providerID)
	if err != nil {
		utils.GetLogger().Warn("notify: provider lookup failed",
			zap.String("providerId", providerID), zap.Error(err))
		return
	}
	s.enqueue(ctx, p.Email, subject, body)
}

func (s *QueueNotificationService) enqueue(ctx context.Context, to, subject, body string) {
	task, err := tasks.NewEmailTask(tasks.EmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		utils.GetLogger().Warn("notify: failed to build email task", zap.Error(err))
		return
	}
	if _, err := s.Client.EnqueueContext(ctx, task); err != nil {
		utils.GetLogger().Warn("notify: failed to enqueue email",
			zap.String("to", to), zap.Error(err))
	}
}

// DirectNotificationService sends through a Sender on a goroutine, for
// deployments without a Redis-backed queue.
type DirectNotificationService struct {
	Accounts accountRepo.AccountRepository
	Sender   Sender
}

func (s *DirectNotificationService) NotifyClient(ctx context.Context, clientID, subject, body string) {
	c, err := s.Accounts.GetClient(clientID)
	if err != nil {
		utils.GetLogger().Warn("notify: client lookup failed",
			zap.String("clientId", clientID), zap.Error(err))
		return
	}
	s.deliver(c.Email, subject, body)
}

func (s *DirectNotificationService) NotifyProvider(ctx context.Context, providerID, subject, body string) {
	p, err := s.Accounts.GetProvider(providerID)
	if err != nil {
		utils.GetLogger().Warn("notify: provider lookup failed",
			zap.String("providerId", providerID), zap.Error(err))
		return
	}
	s.deliver(p.Email, subject, body)
}

func (s *DirectNotificationService) deliver(to, subject, body string) {
	go func() {
		if err := s.Sender.Send(to, subject, body); err != nil {
			utils.GetLogger().Warn("notify: delivery failed",
				zap.String("to", to), zap.Error(err))
		}
	}()
}
