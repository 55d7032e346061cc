package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/previsio/previsio-backend/internal/pkg/dbctx"
	"github.com/previsio/previsio-backend/internal/pkg/logger"
	"github.com/previsio/previsio-backend/internal/platform/n8n"
	"github.com/previsio/previsio-backend/internal/repos"
)

type ChatRequest struct {
	JobID    uuid.UUID       `json:"jobId"`
	Question string          `json:"question"`
	History  json.RawMessage `json:"history"`
}

type ChatService interface {
	Ask(ctx context.Context, userID uuid.UUID, req ChatRequest) (json.RawMessage, error)
}

type chatService struct {
	log     *logger.Logger
	jobRepo repos.ForecastJobRepo
	n8n     n8n.Client
}

func NewChatService(log *logger.Logger, jobRepo repos.ForecastJobRepo, client n8n.Client) ChatService {
	return &chatService{
		log:     log.With("service", "ChatService"),
		jobRepo: jobRepo,
		n8n:     client,
	}
}

// Ask relays a question about a job to the assistant webhook. The job has to
// belong to the caller; the payload and the answer are passed through opaque.
func (s *chatService) Ask(ctx context.Context, userID uuid.UUID, req ChatRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.Question) == "" || req.JobID == uuid.Nil {
		return nil, ErrMissingFields
	}

	job, err := s.jobRepo.GetByIDForUser(dbctx.Context{Ctx: ctx}, req.JobID, userID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotOwned
	}

	answer, err := s.n8n.Chat(ctx, n8n.ChatPayload{
		JobID:    req.JobID,
		UserID:   userID,
		Question: req.Question,
		History:  req.History,
	})
	if err != nil {
		s.log.Warn("chat webhook relay failed", "job_id", req.JobID, "error", err)
		return nil, err
	}
	return answer, nil
}
