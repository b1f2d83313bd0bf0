package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

// ContentUsecase covers the thin content lifecycle around the core: create,
// fetch, delete, and the comment append log. Counter mutations go through
// the ledger (likes) or AdjustCounter (comments); nothing else touches
// them.
type ContentUsecase struct {
	contents ContentRepository
	comments CommentRepository
}

func NewContentUsecase(contents ContentRepository, comments CommentRepository) *ContentUsecase {
	return &ContentUsecase{contents: contents, comments: comments}
}

// CreateInput is the validated input for publishing a content item.
type CreateInput struct {
	Title       string
	MediaURL    string
	Description string
	Category    driftboard.Category
	Tags        []string
	OwnerID     string
	OwnerName   string
	Public      bool
}

func (uc *ContentUsecase) Create(ctx context.Context, input CreateInput) (driftboard.ContentItem, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Create")
	defer span.End()

	if input.OwnerID == "" {
		return driftboard.ContentItem{}, domain.InvalidActorError{}
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return driftboard.ContentItem{}, domain.InvalidQueryError{Reason: "title is required"}
	}
	if input.MediaURL == "" {
		return driftboard.ContentItem{}, domain.InvalidQueryError{Reason: "mediaURL is required"}
	}
	if _, ok := driftboard.ParseCategory(string(input.Category)); !ok {
		return driftboard.ContentItem{}, domain.InvalidQueryError{Reason: "unknown category"}
	}

	item := driftboard.ContentItem{
		ID:          uuid.NewString(),
		Title:       title,
		MediaURL:    input.MediaURL,
		Description: input.Description,
		Category:    input.Category,
		Tags:        input.Tags,
		OwnerID:     input.OwnerID,
		OwnerName:   input.OwnerName,
		Public:      input.Public,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.contents.Create(ctx, item); err != nil {
		return driftboard.ContentItem{}, err
	}

	return item, nil
}

func (uc *ContentUsecase) Get(ctx context.Context, id string) (driftboard.ContentItem, error) {
	return uc.contents.Get(ctx, id)
}

// Delete removes a content item. Only the owner may delete; the store
// cascades engagement records and comments so no counters are orphaned.
func (uc *ContentUsecase) Delete(ctx context.Context, actor, id string) error {
	ctx, span := tracer.Start(ctx, "Content.Usecase.Delete")
	defer span.End()

	item, err := uc.contents.Get(ctx, id)
	if err != nil {
		return err
	}
	if item.OwnerID != actor {
		return domain.UnauthorizedError{}
	}

	return uc.contents.Delete(ctx, id)
}

// AddComment appends to the content's comment log and bumps the
// denormalized comment count.
func (uc *ContentUsecase) AddComment(ctx context.Context, actor, contentID, body string) (domain.Comment, error) {
	ctx, span := tracer.Start(ctx, "Content.Usecase.AddComment")
	defer span.End()

	if actor == "" {
		return domain.Comment{}, domain.InvalidActorError{}
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, domain.InvalidQueryError{Reason: "comment body is required"}
	}

	if _, err := uc.contents.Get(ctx, contentID); err != nil {
		return domain.Comment{}, err
	}

	comment, err := uc.comments.Append(ctx, domain.Comment{
		ContentID: contentID,
		AuthorID:  actor,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Comment{}, err
	}

	if err := uc.contents.AdjustCounter(ctx, contentID, domain.CounterComments, 1); err != nil {
		return domain.Comment{}, err
	}

	return comment, nil
}

func (uc *ContentUsecase) ListComments(ctx context.Context, contentID string) ([]domain.Comment, error) {
	if _, err := uc.contents.Get(ctx, contentID); err != nil {
		return nil, err
	}
	return uc.comments.List(ctx, contentID)
}
