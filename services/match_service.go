package services

import (
	"context"
	"log"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"
)

// MatchService implements like/reject recording, mutual-match promotion and
// candidate discovery.
type MatchService struct {
	Store   MatchStore
	Members MemberStore
	Notify  Notifier
}

// DefaultCandidateLimit caps candidate discovery when the caller asks for
// nothing specific.
const DefaultCandidateLimit = 10

// RecordAction upserts the caller's edge toward the target and returns the
// resulting status. A like that completes a reciprocal pair promotes both
// edges to mutual_match atomically; repeating the same action is a no-op.
func (ms *MatchService) RecordAction(ctx context.Context, caller models.Identity, targetID, action string) (string, error) {
	if targetID == "" {
		return "", apperrors.InvalidArgument("targetId is required")
	}
	if targetID == caller.ParticipantID {
		return "", apperrors.InvalidArgument("cannot act on yourself")
	}
	if action != models.MatchActionLike && action != models.MatchActionReject {
		return "", apperrors.InvalidArgument("action must be like or reject")
	}

	existing, err := ms.Store.GetEdge(ctx, caller.ParticipantID, targetID)
	if err != nil {
		return "", apperrors.Internal(err)
	}

	if action == models.MatchActionReject {
		return ms.recordReject(ctx, caller, targetID, existing)
	}
	return ms.recordLike(ctx, caller, targetID, existing)
}

func (ms *MatchService) recordReject(ctx context.Context, caller models.Identity, targetID string, existing *models.MatchEdge) (string, error) {
	if existing != nil && existing.Status == models.MatchStatusRejected {
		return models.MatchStatusRejected, nil
	}

	if existing != nil && existing.Status == models.MatchStatusMutual {
		// Rejecting a mutual match demotes the reverse edge back to a
		// plain like so the pair never disagrees about being mutual.
		demoted, err := ms.Store.DemoteMutual(ctx, caller.ParticipantID, targetID)
		if err != nil {
			return "", apperrors.Internal(err)
		}
		if demoted {
			ms.emit("dislike", caller, targetID)
			return models.MatchStatusRejected, nil
		}
		// The reverse side changed underneath us; fall through to the
		// plain upsert.
	}

	if err := ms.putEdge(ctx, caller.ParticipantID, targetID, models.MatchStatusRejected); err != nil {
		return "", apperrors.Internal(err)
	}
	ms.emit("dislike", caller, targetID)
	return models.MatchStatusRejected, nil
}

func (ms *MatchService) recordLike(ctx context.Context, caller models.Identity, targetID string, existing *models.MatchEdge) (string, error) {
	if existing != nil && existing.Status == models.MatchStatusMutual {
		return models.MatchStatusMutual, nil
	}
	if existing == nil || existing.Status != models.MatchStatusMatched {
		if err := ms.putEdge(ctx, caller.ParticipantID, targetID, models.MatchStatusMatched); err != nil {
			return "", apperrors.Internal(err)
		}
		ms.emit("like", caller, targetID)
	}

	// Reciprocity check: the reverse edge decides whether this like closes
	// a mutual pair. The promotion itself is conditioned on both edges, so
	// concurrent reciprocal likes converge on exactly one mutual state.
	opposite, err := ms.Store.GetEdge(ctx, targetID, caller.ParticipantID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if opposite == nil || opposite.Status == models.MatchStatusRejected {
		return models.MatchStatusMatched, nil
	}

	promoted, err := ms.Store.PromoteMutual(ctx, caller.ParticipantID, targetID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if !promoted {
		// The reverse side turned into a reject between the read and the
		// promotion. The caller keeps a plain like.
		return models.MatchStatusMatched, nil
	}

	log.Printf("Mutual match between %s and %s", caller.ParticipantID, targetID)
	ms.emit("mutual_match", caller, targetID)
	return models.MatchStatusMutual, nil
}

func (ms *MatchService) putEdge(ctx context.Context, actorID, targetID, status string) error {
	return ms.Store.PutEdge(ctx, models.MatchEdge{
		ActorID:   actorID,
		TargetID:  targetID,
		Status:    status,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (ms *MatchService) emit(event string, caller models.Identity, targetID string) {
	if ms.Notify == nil {
		return
	}
	ms.Notify.Emit(event, map[string]string{
		"actorId":  caller.ParticipantID,
		"targetId": targetID,
	})
}

// ListCandidates returns members the caller has not acted on yet, excluding
// the caller. Any existing edge from the caller's side hides the target,
// regardless of its status. Discovery is tenant-wide by design.
func (ms *MatchService) ListCandidates(ctx context.Context, caller models.Identity, limit int) ([]models.Member, error) {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	edges, err := ms.Store.ListEdgesFrom(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	excluded := map[string]struct{}{
		caller.ParticipantID: {},
	}
	for _, edge := range edges {
		excluded[edge.TargetID] = struct{}{}
	}

	members, err := ms.Members.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	candidates := make([]models.Member, 0, limit)
	for _, member := range members {
		if _, skip := excluded[member.MemberID]; skip {
			continue
		}
		candidates = append(candidates, member)
		if len(candidates) == limit {
			break
		}
	}
	return candidates, nil
}

// ListMutualMatches returns the members on the other end of the caller's
// mutual_match edges. Both rows of a pair are written together, so querying
// the caller's side answers identically for either member.
func (ms *MatchService) ListMutualMatches(ctx context.Context, caller models.Identity) ([]models.Member, error) {
	edges, err := ms.Store.ListEdgesFrom(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	matches := []models.Member{}
	for _, edge := range edges {
		if edge.Status != models.MatchStatusMutual {
			continue
		}
		member, err := ms.Members.Get(ctx, edge.TargetID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if member == nil {
			continue // roster row removed out from under the edge
		}
		matches = append(matches, *member)
	}
	return matches, nil
}
