package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xxtryitxx/horizontos/internal/api/metrics"
	"github.com/xxtryitxx/horizontos/internal/core/domain"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const defaultConversationLimit = 100

// ChatService resolves two-party conversations and appends turns. Sent
// messages are published to the conversation's bus channel so live views
// pick them up.
type ChatService struct {
	messages  ports.MessageRepository
	assistant ports.Assistant
	bus       ports.EventBus
	log       zerolog.Logger
}

func NewChatService(messages ports.MessageRepository, assistant ports.Assistant, bus ports.EventBus, log zerolog.Logger) *ChatService {
	return &ChatService{messages: messages, assistant: assistant, bus: bus, log: log}
}

// Conversation returns the ordered message set for (me, peer): the union
// of both directions, timestamp ascending. The assistant peer gets a
// seeded greeting instead of a store query.
func (s *ChatService) Conversation(ctx context.Context, me, peer string, limit int64) ([]domain.Message, error) {
	if me == "" || peer == "" {
		return nil, domain.ErrValidation
	}
	if peer == domain.AssistantID {
		return []domain.Message{assistantTurn("welcome", domain.AssistantGreeting)}, nil
	}
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	return s.messages.Conversation(ctx, me, peer, limit)
}

// Send appends a turn. Assistant exchanges are request/response only and
// never persisted; generation failures degrade to a static apology.
func (s *ChatService) Send(ctx context.Context, me, peer, text string) ([]domain.Message, error) {
	text = strings.TrimSpace(text)
	if me == "" || peer == "" || text == "" {
		return nil, domain.ErrValidation
	}

	if peer == domain.AssistantID {
		return s.sendToAssistant(ctx, me, text)
	}

	msg := &domain.Message{
		SenderID:   me,
		ReceiverID: peer,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}
	metrics.MessagesSentTotal.WithLabelValues("direct").Inc()

	if payload, err := json.Marshal(msg); err == nil {
		if err := s.bus.Publish(ctx, domain.ConversationKey(me, peer), payload); err != nil {
			s.log.Warn().Err(err).Str("sender", me).Msg("live publish failed")
		}
	}

	return []domain.Message{*msg}, nil
}

func (s *ChatService) sendToAssistant(ctx context.Context, me, text string) ([]domain.Message, error) {
	userTurn := domain.Message{
		SenderID:   me,
		ReceiverID: domain.AssistantID,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}

	reply, err := s.assistant.Generate(ctx, text)
	if err != nil || reply == "" {
		s.log.Warn().Err(err).Msg("assistant generation failed, degrading")
		reply = domain.AssistantApology
	}
	metrics.MessagesSentTotal.WithLabelValues("assistant").Inc()

	return []domain.Message{userTurn, assistantTurn("", reply)}, nil
}

func assistantTurn(id, text string) domain.Message {
	return domain.Message{
		ID:        id,
		SenderID:  domain.AssistantID,
		Text:      text,
		IsAI:      true,
		Timestamp: time.Now().UTC(),
	}
}
