package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
)

var tracer = otel.Tracer("usecase")

// EngagementUsecase is the engagement ledger: it flips (actor, content,
// kind) relations and keeps the content's denormalized counters consistent
// with the relation set. The relation set is the source of truth; the
// counter is a materialized view reconciled on every toggle.
type EngagementUsecase struct {
	repo EngagementRepository
}

func NewEngagementUsecase(repo EngagementRepository) *EngagementUsecase {
	return &EngagementUsecase{repo: repo}
}

// ToggleLike flips the actor's like relation on the content item and
// returns the new state plus the reconciled like count.
func (uc *EngagementUsecase) ToggleLike(ctx context.Context, actor, contentID string) (driftboard.ToggleLikeResult, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Usecase.ToggleLike")
	defer span.End()

	if actor == "" {
		return driftboard.ToggleLikeResult{}, domain.InvalidActorError{}
	}

	active, count, err := uc.repo.Toggle(ctx, actor, contentID, driftboard.KindLike)
	if err != nil {
		span.RecordError(errors.Wrap(err, "toggle like failed"))
		return driftboard.ToggleLikeResult{}, err
	}

	return driftboard.ToggleLikeResult{Liked: active, Likes: count}, nil
}

// ToggleSave flips the actor's save relation. Saves carry no denormalized
// counter on the content item.
func (uc *EngagementUsecase) ToggleSave(ctx context.Context, actor, contentID string) (driftboard.ToggleSaveResult, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Usecase.ToggleSave")
	defer span.End()

	if actor == "" {
		return driftboard.ToggleSaveResult{}, domain.InvalidActorError{}
	}

	active, _, err := uc.repo.Toggle(ctx, actor, contentID, driftboard.KindSave)
	if err != nil {
		span.RecordError(errors.Wrap(err, "toggle save failed"))
		return driftboard.ToggleSaveResult{}, err
	}

	return driftboard.ToggleSaveResult{Saved: active}, nil
}

// Status reports the actor's like and save state for one content item.
// Absent content is an error (NotFound), not a pair of false flags; every
// call site relies on that policy.
func (uc *EngagementUsecase) Status(ctx context.Context, actor, contentID string) (driftboard.EngagementStatus, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Usecase.Status")
	defer span.End()

	if actor == "" {
		return driftboard.EngagementStatus{}, domain.InvalidActorError{}
	}

	liked, err := uc.repo.Has(ctx, actor, contentID, driftboard.KindLike)
	if err != nil {
		return driftboard.EngagementStatus{}, err
	}
	saved, err := uc.repo.Has(ctx, actor, contentID, driftboard.KindSave)
	if err != nil {
		return driftboard.EngagementStatus{}, err
	}

	return driftboard.EngagementStatus{Liked: liked, Saved: saved}, nil
}

// Count returns the authoritative count derived from the relation set.
// The denormalized field on the content row is the fast path used by the
// ranking engine; this is the reconciliation source.
func (uc *EngagementUsecase) Count(ctx context.Context, contentID string, kind driftboard.EngagementKind) (int64, error) {
	return uc.repo.Count(ctx, contentID, kind)
}

// ListContentFor returns the ids of all content the actor holds an active
// relation of the given kind on, newest first.
func (uc *EngagementUsecase) ListContentFor(ctx context.Context, actor string, kind driftboard.EngagementKind) ([]string, error) {
	if actor == "" {
		return nil, domain.InvalidActorError{}
	}
	return uc.repo.ListContentIDs(ctx, actor, kind)
}
