package services

import (
	"context"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"
)

// FriendshipService implements the request/accept/decline state machine.
type FriendshipService struct {
	Store   FriendStore
	Members MemberStore
}

// Request records a pending friendship request from the caller. Requesting
// an existing friend is a no-op success; requesting yourself is an error.
func (fs *FriendshipService) Request(ctx context.Context, caller models.Identity, targetID string) error {
	if targetID == "" {
		return apperrors.InvalidArgument("targetId is required")
	}
	if targetID == caller.ParticipantID {
		return apperrors.InvalidArgument("cannot send a friend request to yourself")
	}

	accepted, err := fs.acceptedEitherWay(ctx, caller.ParticipantID, targetID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if accepted {
		return nil // already friends
	}

	err = fs.Store.Put(ctx, models.FriendEdge{
		RequesterID: caller.ParticipantID,
		TargetID:    targetID,
		Status:      models.FriendStatusPending,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Respond lets the request's target accept or decline. Accept flips the edge
// to accepted; decline deletes it.
func (fs *FriendshipService) Respond(ctx context.Context, caller models.Identity, requesterID, action string) error {
	if action != models.FriendActionAccept && action != models.FriendActionDecline {
		return apperrors.InvalidArgument("action must be accept or decline")
	}

	edge, err := fs.Store.Get(ctx, requesterID, caller.ParticipantID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if edge == nil {
		return apperrors.NotFound("friend request not found")
	}

	if action == models.FriendActionDecline {
		if err := fs.Store.Delete(ctx, requesterID, caller.ParticipantID); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	}

	if err := fs.Store.SetAccepted(ctx, requesterID, caller.ParticipantID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// IsFriend reports whether a and b are friends: trivially true for the same
// member, otherwise an accepted edge in either orientation.
func (fs *FriendshipService) IsFriend(ctx context.Context, a, b string) (bool, error) {
	if a == b {
		return true, nil
	}
	accepted, err := fs.acceptedEitherWay(ctx, a, b)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return accepted, nil
}

func (fs *FriendshipService) acceptedEitherWay(ctx context.Context, a, b string) (bool, error) {
	edge, err := fs.Store.Get(ctx, a, b)
	if err != nil {
		return false, err
	}
	if edge != nil && edge.Status == models.FriendStatusAccepted {
		return true, nil
	}
	edge, err = fs.Store.Get(ctx, b, a)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == models.FriendStatusAccepted, nil
}

// ListFriends returns the members on the other end of the caller's accepted
// edges, from both orientations.
func (fs *FriendshipService) ListFriends(ctx context.Context, caller models.Identity) ([]models.Member, error) {
	outgoing, err := fs.Store.ListByRequester(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	incoming, err := fs.Store.ListByTarget(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	friends := []models.Member{}
	seen := map[string]struct{}{}
	for _, edge := range append(outgoing, incoming...) {
		if edge.Status != models.FriendStatusAccepted {
			continue
		}
		otherID := edge.TargetID
		if otherID == caller.ParticipantID {
			otherID = edge.RequesterID
		}
		if _, dup := seen[otherID]; dup {
			continue
		}
		seen[otherID] = struct{}{}

		member, err := fs.Members.Get(ctx, otherID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if member == nil {
			continue
		}
		friends = append(friends, *member)
	}
	return friends, nil
}

// ListPendingRequests returns requests waiting on the caller's answer.
func (fs *FriendshipService) ListPendingRequests(ctx context.Context, caller models.Identity) ([]models.FriendEdge, error) {
	incoming, err := fs.Store.ListByTarget(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	pending := []models.FriendEdge{}
	for _, edge := range incoming {
		if edge.Status == models.FriendStatusPending {
			pending = append(pending, edge)
		}
	}
	return pending, nil
}
