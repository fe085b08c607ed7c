package service

import (
	"context"
	"errors"
	"fmt"

	"newsportal/internal/apperrors"
	"newsportal/internal/config"
	"newsportal/internal/models"
	"newsportal/internal/permissions"
	"newsportal/internal/repository"
)

type CreatePostRequest struct {
	Title string
	Text  string
	Topic string
}

type UpdatePostRequest struct {
	Title string
	Text  string
	Topic string
}

// BulkUpdateItem is one element of the PATCH /posts/multiple payload.
type BulkUpdateItem struct {
	PostID string `json:"postId"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Topic  string `json:"topic,omitempty"`
}

// BulkUpdateResult reports every item separately: one forbidden post
// does not roll back the others.
type BulkUpdateResult struct {
	PostID string       `json:"postId"`
	Post   *models.Post `json:"post,omitempty"`
	Error  string       `json:"error,omitempty"`
	Status int          `json:"status"`
}

type PostService interface {
	List(ctx context.Context, actor *models.User, filter repository.PostFilter) ([]models.Post, error)
	Get(ctx context.Context, actor *models.User, postID string) (*models.Post, error)
	Create(ctx context.Context, actor *models.User, req CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, actor *models.User, postID string, req UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, actor *models.User, postID string) error
	BulkUpdate(ctx context.Context, actor *models.User, items []BulkUpdateItem) ([]BulkUpdateResult, error)
}

type postService struct {
	postRepo  repository.PostRepository
	evaluator *permissions.Evaluator
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, evaluator *permissions.Evaluator, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		evaluator: evaluator,
		cfg:       cfg,
	}
}

// List scoping: staff gets the filtered view; non-staff with a company
// filter gets their whole company's posts, without it only their own.
func (s *postService) List(ctx context.Context, actor *models.User, filter repository.PostFilter) ([]models.Post, error) {
	if actor.IsStaff {
		return s.postRepo.List(ctx, filter)
	}

	if filter.CompanyID != "" {
		if actor.CompanyID == nil {
			return []models.Post{}, nil
		}
		return s.postRepo.ListByCompany(ctx, *actor.CompanyID)
	}

	return s.postRepo.ListByAuthor(ctx, actor.UserID)
}

func (s *postService) Get(ctx context.Context, actor *models.User, postID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *postService) Create(ctx context.Context, actor *models.User, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:    req.Title,
		Topic:    req.Topic,
		AuthorID: actor.UserID,
	}
	if req.Text != "" {
		post.Text = &req.Text
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, actor *models.User, postID string, req UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !s.evaluator.AllowsPostObject(actor, post) {
		return nil, fmt.Errorf("нельзя изменять чужие посты: %w", apperrors.ErrForbidden)
	}

	applyPostUpdate(post, req.Title, req.Text, req.Topic)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete is a soft delete: the row stays, default queries stop seeing it.
func (s *postService) Delete(ctx context.Context, actor *models.User, postID string) error {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return fmt.Errorf("удаление постов доступно только staff: %w", apperrors.ErrForbidden)
	}

	return s.postRepo.SoftDelete(ctx, postID)
}

// BulkUpdate applies each item independently and reports per-item
// results: forbidden or missing posts fail alone.
func (s *postService) BulkUpdate(ctx context.Context, actor *models.User, items []BulkUpdateItem) ([]BulkUpdateResult, error) {
	results := make([]BulkUpdateResult, 0, len(items))

	for _, item := range items {
		result := BulkUpdateResult{PostID: item.PostID}

		post, err := s.postRepo.GetByID(ctx, item.PostID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				result.Status = 404
				result.Error = "пост не найден"
			} else {
				result.Status = 500
				result.Error = "ошибка при получении поста"
			}
			results = append(results, result)
			continue
		}

		if !s.evaluator.AllowsPostObject(actor, post) {
			result.Status = 403
			result.Error = "нельзя изменять чужие посты"
			results = append(results, result)
			continue
		}

		applyPostUpdate(post, item.Title, item.Text, item.Topic)

		if err := s.postRepo.Update(ctx, post); err != nil {
			result.Status = 500
			result.Error = "ошибка при обновлении поста"
			results = append(results, result)
			continue
		}

		result.Status = 200
		result.Post = post
		results = append(results, result)
	}

	return results, nil
}

func applyPostUpdate(post *models.Post, title, text, topic string) {
	if title != "" {
		post.Title = title
	}
	if text != "" {
		post.Text = &text
	}
	if topic != "" {
		post.Topic = topic
	}
}
