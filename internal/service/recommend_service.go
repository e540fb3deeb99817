package service

import (
	"context"
	"fmt"
	"time"

	"next-action-be/internal/dto"
	"next-action-be/internal/entity"
	"next-action-be/internal/pkg/logger"
	"next-action-be/internal/repository/memory"
	"next-action-be/pkg/catalog"
	"next-action-be/pkg/feature"
	"next-action-be/pkg/ranking"

	"github.com/google/uuid"
)

// SpecDescriber resolves a spec URL to its cached catalog description.
type SpecDescriber interface {
	Describe(ctx context.Context, specURL string) (string, error)
}

// Reranker performs the qualitative re-ranking call.
type Reranker interface {
	Rerank(ctx context.Context, history []entity.Event, catalogDescription string, ranking []entity.RankedAction, k int, excludeMutating bool, extraContext string) ([]entity.RerankItem, error)
}

// IRecommendService runs the full recommendation pipeline for one request.
type IRecommendService interface {
	Next(ctx context.Context, request *dto.RecommendRequest) (*dto.RecommendResponse, error)
}

type recommendService struct {
	describer    SpecDescriber
	engine       *ranking.Engine
	orchestrator Reranker
	eventRepo    memory.IEventLogRepository
	publisher    IPublisherService
	commitEvents bool
	defaultK     int
	timeout      time.Duration
	sysLogger    logger.ILogger
}

func NewRecommendService(
	describer SpecDescriber,
	engine *ranking.Engine,
	orchestrator Reranker,
	eventRepo memory.IEventLogRepository,
	publisher IPublisherService,
	commitEvents bool,
	defaultK int,
	timeout time.Duration,
	sysLogger logger.ILogger,
) IRecommendService {
	return &recommendService{
		describer:    describer,
		engine:       engine,
		orchestrator: orchestrator,
		eventRepo:    eventRepo,
		publisher:    publisher,
		commitEvents: commitEvents,
		defaultK:     defaultK,
		timeout:      timeout,
		sysLogger:    sysLogger,
	}
}

// Next abstracts the request's events against the spec-derived catalog,
// derives the feature vector from the merged log, ranks every known
// action and hands the top-k to the re-ranking orchestrator. Shared state
// is only read here; committing new events happens via the event bus
// after the response is assembled.
func (s *recommendService) Next(ctx context.Context, request *dto.RecommendRequest) (*dto.RecommendResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	recommendationId := uuid.NewString()

	description, err := s.describer.Describe(ctx, request.SpecURL)
	if err != nil {
		return nil, fmt.Errorf("resolve spec source: %w", err)
	}
	cat := catalog.Parse(description)
	if cat.Len() == 0 {
		return nil, fmt.Errorf("spec source %s yielded an empty endpoint catalog", request.SpecURL)
	}

	newEvents := make([]entity.Event, len(request.Events))
	for i, ev := range request.Events {
		newEvents[i] = s.abstract(cat, ev.ToEntity(request.UserId))
	}

	// Snapshot returns a private copy; tagging it cannot race with other
	// requests.
	baseline := s.eventRepo.Snapshot()
	for i, ev := range baseline {
		if ev.UserId == request.UserId && ev.Action == "" {
			baseline[i] = s.abstract(cat, ev)
		}
	}

	vector, err := feature.Build(newEvents, baseline, request.UserId)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}

	k := request.K
	if k <= 0 {
		k = s.defaultK
	}

	ranked, err := s.engine.Rank(vector, k)
	if err != nil {
		return nil, fmt.Errorf("rank actions: %w", err)
	}

	items, err := s.orchestrator.Rerank(ctx, newEvents, description, ranked, k, request.Safe, request.Prompt)
	if err != nil {
		return nil, err
	}

	if s.commitEvents {
		if err := s.publisher.PublishCommitEvents(newEvents); err != nil {
			// The recommendation already succeeded; losing the commit is
			// logged, not surfaced.
			s.sysLogger.Warn("recommend", "Failed to publish event commit", map[string]interface{}{
				"error":             err.Error(),
				"user_id":           request.UserId,
				"recommendation_id": recommendationId,
			})
		}
	}

	s.sysLogger.Info("recommend", "Recommendation served", map[string]interface{}{
		"recommendation_id": recommendationId,
		"user_id":           request.UserId,
		"k":                 k,
		"items":             len(items),
	})

	return &dto.RecommendResponse{RecommendationId: recommendationId, Items: items}, nil
}

// abstract assigns the matching template label, or the explicit unknown
// sentinel when no template fits. A raw concrete path must never reach
// the model as a label.
func (s *recommendService) abstract(cat *catalog.Catalog, ev entity.Event) entity.Event {
	if action, ok := cat.Match(ev.Endpoint); ok {
		ev.Action = action.Label()
		return ev
	}
	s.sysLogger.Warn("recommend", "No template matches endpoint", map[string]interface{}{
		"endpoint": ev.Endpoint,
		"user_id":  ev.UserId,
	})
	ev.Action = entity.UnknownActionLabel
	return ev
}
