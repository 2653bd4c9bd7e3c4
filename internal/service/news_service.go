package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/dto"
	"github.com/mightcoding/ISSAConnect/internal/repository"
	"github.com/mightcoding/ISSAConnect/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	newsListLimit       = 10
	defaultNewsCategory = "General"
)

// NewsService defines the interface for news publishing
type NewsService interface {
	// CreateNews publishes an article; the author needs publishing rights
	CreateNews(ctx context.Context, authorID string, req *dto.CreateNewsRequest) (*dto.NewsResponse, error)
	// GetNews retrieves one article and bumps its view counter
	GetNews(ctx context.Context, id string) (*dto.NewsResponse, error)
	// ListNews returns the ten newest articles
	ListNews(ctx context.Context) ([]*dto.NewsResponse, error)
	// UpdateNews updates an article owned by the caller (admins may edit any)
	UpdateNews(ctx context.Context, actorID, id string, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error)
	// DeleteNews removes an article owned by the caller (admins may delete any)
	DeleteNews(ctx context.Context, actorID, id string) error
}

// newsService implements NewsService
type newsService struct {
	newsRepo repository.NewsRepository
	userRepo repository.UserRepository
}

// NewNewsService creates a new NewsService
func NewNewsService(newsRepo repository.NewsRepository, userRepo repository.UserRepository) NewsService {
	return &newsService{newsRepo: newsRepo, userRepo: userRepo}
}

// getActor loads a user and maps absence to ErrUserNotFound
func getActor(ctx context.Context, userRepo repository.UserRepository, id string) (*domain.User, error) {
	user, err := userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// CreateNews publishes an article; the author needs publishing rights
func (s *newsService) CreateNews(ctx context.Context, authorID string, req *dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.news.create")
	defer span.End()

	span.SetAttributes(attribute.String("author_id", authorID))

	author, err := getActor(ctx, s.userRepo, authorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !author.CanPublish() {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	category := req.Category
	if category == "" {
		category = defaultNewsCategory
	}
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = makeExcerpt(req.Content)
	}

	now := time.Now()
	news := &domain.News{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  category,
		ImageURL:  req.ImageURL,
		Excerpt:   excerpt,
		ReadTime:  estimateReadTime(req.Content),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.newsRepo.Create(ctx, news); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("news_id", news.ID))
	span.SetStatus(codes.Ok, "")
	return dto.NewNewsResponse(news, author), nil
}

// GetNews retrieves one article and bumps its view counter
func (s *newsService) GetNews(ctx context.Context, id string) (*dto.NewsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.news.get")
	defer span.End()

	span.SetAttributes(attribute.String("news_id", id))

	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if news == nil {
		span.SetStatus(codes.Error, "news not found")
		return nil, domain.ErrNewsNotFound
	}

	// The increment happens in the database so concurrent reads never
	// lose a view.
	views, err := s.newsRepo.IncrementViews(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	news.Views = views

	author, err := s.userRepo.GetByID(ctx, news.AuthorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewNewsResponse(news, author), nil
}

// ListNews returns the ten newest articles
func (s *newsService) ListNews(ctx context.Context) ([]*dto.NewsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.news.list")
	defer span.End()

	items, err := s.newsRepo.List(ctx, newsListLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	responses := make([]*dto.NewsResponse, 0, len(items))
	for _, n := range items {
		author, err := s.userRepo.GetByID(ctx, n.AuthorID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		responses = append(responses, dto.NewNewsResponse(n, author))
	}

	span.SetAttributes(attribute.Int("news_count", len(responses)))
	span.SetStatus(codes.Ok, "")
	return responses, nil
}

// UpdateNews updates an article owned by the caller (admins may edit any)
func (s *newsService) UpdateNews(ctx context.Context, actorID, id string, req *dto.UpdateNewsRequest) (*dto.NewsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.news.update")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("news_id", id),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if news == nil {
		span.SetStatus(codes.Error, "news not found")
		return nil, domain.ErrNewsNotFound
	}

	if !actor.CanModify(news.AuthorID) {
		span.SetStatus(codes.Error, "permission denied")
		return nil, domain.ErrPermissionDenied
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Content != nil {
		news.Content = *req.Content
		news.ReadTime = estimateReadTime(news.Content)
		if req.Excerpt == nil {
			news.Excerpt = makeExcerpt(news.Content)
		}
	}
	if req.Category != nil {
		news.Category = *req.Category
	}
	if req.ImageURL != nil {
		news.ImageURL = *req.ImageURL
	}
	if req.Excerpt != nil {
		news.Excerpt = *req.Excerpt
	}

	if err := s.newsRepo.Update(ctx, news); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, news.AuthorID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewNewsResponse(news, author), nil
}

// DeleteNews removes an article owned by the caller (admins may delete any)
func (s *newsService) DeleteNews(ctx context.Context, actorID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.news.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("actor_id", actorID),
		attribute.String("news_id", id),
	)

	actor, err := getActor(ctx, s.userRepo, actorID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if news == nil {
		span.SetStatus(codes.Error, "news not found")
		return domain.ErrNewsNotFound
	}

	if !actor.CanModify(news.AuthorID) {
		span.SetStatus(codes.Error, "permission denied")
		return domain.ErrPermissionDenied
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
