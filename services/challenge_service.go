package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/claytonnetvision/wodpulse-back/apperrors"
	"github.com/claytonnetvision/wodpulse-back/models"
	"github.com/claytonnetvision/wodpulse-back/utils"

	"github.com/google/uuid"
)

// ChallengeService runs the challenge lifecycle: creation, invitation
// responses, activation, results and ranking.
type ChallengeService struct {
	Store   ChallengeStore
	Members MemberStore
	Ledger  PerformanceLedger
	Notify  Notifier
}

// CreateChallengeInput carries the creator's request.
type CreateChallengeInput struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	InvitedIDs []string `json:"invitedParticipants"`
}

// Create validates the input and writes the challenge, the creator's
// pre-accepted row and one invited row per invitee as a single transaction.
// An unknown invitee rolls the whole creation back.
func (cs *ChallengeService) Create(ctx context.Context, caller models.Identity, input CreateChallengeInput) (*models.Challenge, error) {
	if input.Title == "" || input.StartDate == "" || input.EndDate == "" {
		return nil, apperrors.InvalidArgument("title, startDate and endDate are required")
	}
	if _, ok := models.ParseChallengeType(input.Type); !ok {
		return nil, apperrors.InvalidArgument("unsupported challenge type")
	}

	start, err := utils.ParseDate(input.StartDate, time.UTC)
	if err != nil {
		return nil, apperrors.InvalidArgument("startDate must be a date or RFC3339 timestamp")
	}
	end, err := utils.ParseDate(input.EndDate, time.UTC)
	if err != nil {
		return nil, apperrors.InvalidArgument("endDate must be a date or RFC3339 timestamp")
	}
	if end.Before(start) {
		return nil, apperrors.InvalidArgument("endDate must not precede startDate")
	}

	inviteeIDs := dedupeIDs(input.InvitedIDs, caller.ParticipantID)
	if len(inviteeIDs) == 0 {
		return nil, apperrors.InvalidArgument("at least one invited participant is required")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	challenge := models.Challenge{
		ChallengeID: uuid.NewString(),
		BoxID:       caller.BoxID,
		CreatorID:   caller.ParticipantID,
		Title:       input.Title,
		Type:        input.Type,
		StartDate:   start.UTC().Format(time.RFC3339),
		EndDate:     end.UTC().Format(time.RFC3339),
		Status:      models.ChallengeStatusPending,
		CreatedAt:   now,
	}

	participants := []models.ChallengeParticipant{{
		ChallengeID:   challenge.ChallengeID,
		ParticipantID: caller.ParticipantID,
		Status:        models.ParticipantStatusAccepted,
		RespondedAt:   now,
	}}
	for _, inviteeID := range inviteeIDs {
		participants = append(participants, models.ChallengeParticipant{
			ChallengeID:   challenge.ChallengeID,
			ParticipantID: inviteeID,
			Status:        models.ParticipantStatusInvited,
		})
	}

	err = cs.Store.CreateWithParticipants(ctx, challenge, participants, inviteeIDs)
	if errors.Is(err, ErrConditionFailed) {
		return nil, apperrors.InvalidArgument("one or more invited participants are not members of this box")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Printf("Challenge %s created by %s with %d invitees", challenge.ChallengeID, caller.ParticipantID, len(inviteeIDs))
	for _, inviteeID := range inviteeIDs {
		cs.emitInvite(challenge, inviteeID)
	}
	return &challenge, nil
}

// Get returns a challenge with its participant rows, box-scoped.
func (cs *ChallengeService) Get(ctx context.Context, caller models.Identity, challengeID string) (*models.ChallengeDetail, error) {
	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return nil, err
	}
	participants, err := cs.Store.ListParticipants(ctx, challengeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.ChallengeDetail{Challenge: *challenge, Participants: participants}, nil
}

// Respond records the caller's accept or decline. On accept, a fresh read of
// every participant row decides whether the challenge activates; the flip is
// conditional on the challenge still being pending, so concurrent final
// acceptances cannot fire it twice or not at all. Returns the challenge
// status after the response.
func (cs *ChallengeService) Respond(ctx context.Context, caller models.Identity, challengeID, action string) (string, error) {
	if action != models.ChallengeActionAccept && action != models.ChallengeActionDecline {
		return "", apperrors.InvalidArgument("action must be accept or decline")
	}

	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return "", err
	}

	row, err := cs.Store.GetParticipant(ctx, challengeID, caller.ParticipantID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if row == nil {
		return "", apperrors.Forbidden("you are not a participant of this challenge")
	}

	status := models.ParticipantStatusAccepted
	if action == models.ChallengeActionDecline {
		status = models.ParticipantStatusRejected
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := cs.Store.SetParticipantStatus(ctx, challengeID, caller.ParticipantID, status, now); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return "", apperrors.NotFound("challenge participant not found")
		}
		return "", apperrors.Internal(err)
	}

	if action != models.ChallengeActionAccept {
		return challenge.Status, nil
	}

	// Re-read all rows after our own write committed; the last acceptance
	// is guaranteed to see everyone accepted.
	participants, err := cs.Store.ListParticipants(ctx, challengeID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if !allAccepted(participants) {
		return challenge.Status, nil
	}

	activated, err := cs.Store.Activate(ctx, challengeID)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	if activated {
		log.Printf("Challenge %s is active: all participants accepted", challengeID)
		cs.emit("challenge_active", map[string]string{"challengeId": challengeID})
	}
	return models.ChallengeStatusActive, nil
}

func allAccepted(participants []models.ChallengeParticipant) bool {
	if len(participants) == 0 {
		return false
	}
	for _, p := range participants {
		if p.Status != models.ParticipantStatusAccepted {
			return false
		}
	}
	return true
}

// AddParticipants lets the creator invite more members. Ids already present
// on the challenge are skipped silently.
func (cs *ChallengeService) AddParticipants(ctx context.Context, caller models.Identity, challengeID string, newIDs []string) error {
	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return err
	}
	if challenge.CreatorID != caller.ParticipantID {
		return apperrors.Forbidden("only the creator may add participants")
	}

	inviteeIDs := dedupeIDs(newIDs, caller.ParticipantID)
	if len(inviteeIDs) == 0 {
		return apperrors.InvalidArgument("at least one new participant id is required")
	}

	for _, inviteeID := range inviteeIDs {
		member, err := cs.Members.Get(ctx, inviteeID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if member == nil || member.BoxID != challenge.BoxID {
			return apperrors.InvalidArgument(fmt.Sprintf("participant %s is not a member of this box", inviteeID))
		}
	}

	for _, inviteeID := range inviteeIDs {
		added, err := cs.Store.AddParticipant(ctx, models.ChallengeParticipant{
			ChallengeID:   challengeID,
			ParticipantID: inviteeID,
			Status:        models.ParticipantStatusInvited,
		})
		if err != nil {
			return apperrors.Internal(err)
		}
		if added {
			cs.emitInvite(*challenge, inviteeID)
		}
	}
	return nil
}

// Delete removes the challenge with its participant and result rows. Only
// the creator may delete.
func (cs *ChallengeService) Delete(ctx context.Context, caller models.Identity, challengeID string) error {
	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return err
	}
	if challenge.CreatorID != caller.ParticipantID {
		return apperrors.Forbidden("only the creator may delete the challenge")
	}
	if err := cs.Store.DeleteCascade(ctx, challengeID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// SubmitResult upserts the caller's score; later submissions overwrite.
func (cs *ChallengeService) SubmitResult(ctx context.Context, caller models.Identity, challengeID string, value float64) error {
	if _, err := cs.fetch(ctx, caller, challengeID); err != nil {
		return err
	}
	row, err := cs.Store.GetParticipant(ctx, challengeID, caller.ParticipantID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if row == nil {
		return apperrors.Forbidden("you are not a participant of this challenge")
	}

	err = cs.Store.PutResult(ctx, models.ChallengeResult{
		ChallengeID:   challengeID,
		ParticipantID: caller.ParticipantID,
		ResultValue:   value,
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// ComputeCaloriesResult derives the caller's result for rolling-window
// challenge types from the performance ledger, summing calories over the
// window ending at the challenge's end date.
func (cs *ChallengeService) ComputeCaloriesResult(ctx context.Context, caller models.Identity, challengeID string) (float64, error) {
	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return 0, err
	}
	challengeType, ok := models.ParseChallengeType(challenge.Type)
	if !ok || !challengeType.HasWindow() {
		return 0, apperrors.InvalidArgument("challenge type does not compute results from the ledger")
	}

	row, err := cs.Store.GetParticipant(ctx, challengeID, caller.ParticipantID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	if row == nil {
		return 0, apperrors.Forbidden("you are not a participant of this challenge")
	}

	end, err := time.Parse(time.RFC3339, challenge.EndDate)
	if err != nil {
		return 0, apperrors.Internal(fmt.Errorf("challenge %s has malformed endDate: %w", challengeID, err))
	}
	start := end.AddDate(0, 0, -challengeType.WindowDays)

	calories, _ := models.ParseLeaderboardMetric("calories")
	total, err := cs.Ledger.SumMetric(ctx, caller.ParticipantID, calories, start, end)
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	err = cs.Store.PutResult(ctx, models.ChallengeResult{
		ChallengeID:   challengeID,
		ParticipantID: caller.ParticipantID,
		ResultValue:   total,
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return total, nil
}

// Ranking computes the challenge standing over accepted participants.
func (cs *ChallengeService) Ranking(ctx context.Context, caller models.Identity, challengeID string) (*models.ChallengeRanking, error) {
	challenge, err := cs.fetch(ctx, caller, challengeID)
	if err != nil {
		return nil, err
	}
	challengeType, ok := models.ParseChallengeType(challenge.Type)
	if !ok {
		return nil, apperrors.Internal(fmt.Errorf("challenge %s has unknown type %q", challengeID, challenge.Type))
	}

	participants, err := cs.Store.ListParticipants(ctx, challengeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	results, err := cs.Store.ListResults(ctx, challengeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	resultsByID := map[string]models.ChallengeResult{}
	for _, result := range results {
		resultsByID[result.ParticipantID] = result
	}

	rows := []models.RankedResult{}
	for _, participant := range participants {
		if participant.Status != models.ParticipantStatusAccepted {
			continue
		}
		row := models.RankedResult{ParticipantID: participant.ParticipantID}
		if member, err := cs.Members.Get(ctx, participant.ParticipantID); err == nil && member != nil {
			row.Name = member.Name
			row.PhotoKey = member.PhotoKey
		}
		if result, ok := resultsByID[participant.ParticipantID]; ok {
			row.ResultValue = result.ResultValue
			row.RecordedAt = result.RecordedAt
			row.HasResult = true
		}
		rows = append(rows, row)
	}

	return &models.ChallengeRanking{
		Challenge: *challenge,
		Ranking:   RankResults(rows, challengeType),
	}, nil
}

// ListMine returns every challenge the caller participates in, newest first,
// joined with the caller's own status.
func (cs *ChallengeService) ListMine(ctx context.Context, caller models.Identity) ([]models.ChallengeSummary, error) {
	rows, err := cs.Store.ListByParticipant(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	summaries := []models.ChallengeSummary{}
	for _, row := range rows {
		challenge, err := cs.Store.Get(ctx, row.ChallengeID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if challenge == nil || challenge.BoxID != caller.BoxID {
			continue
		}
		summaries = append(summaries, models.ChallengeSummary{
			Challenge: *challenge,
			MyStatus:  row.Status,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt > summaries[j].CreatedAt
	})
	return summaries, nil
}

// ListInvites returns the caller's open invitations with creator names, the
// payload behind the notifications badge.
func (cs *ChallengeService) ListInvites(ctx context.Context, caller models.Identity) ([]models.ChallengeInvite, error) {
	rows, err := cs.Store.ListByParticipant(ctx, caller.ParticipantID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	invites := []models.ChallengeInvite{}
	for _, row := range rows {
		if row.Status != models.ParticipantStatusInvited {
			continue
		}
		challenge, err := cs.Store.Get(ctx, row.ChallengeID)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if challenge == nil || challenge.BoxID != caller.BoxID {
			continue
		}
		invite := models.ChallengeInvite{
			ChallengeID: challenge.ChallengeID,
			Title:       challenge.Title,
			Type:        challenge.Type,
			CreatorID:   challenge.CreatorID,
		}
		if creator, err := cs.Members.Get(ctx, challenge.CreatorID); err == nil && creator != nil {
			invite.CreatorName = creator.Name
		}
		invites = append(invites, invite)
	}
	return invites, nil
}

// fetch loads a challenge and validates the caller's tenant. A challenge in
// another box reports NotFound, never Forbidden, so ids don't leak.
func (cs *ChallengeService) fetch(ctx context.Context, caller models.Identity, challengeID string) (*models.Challenge, error) {
	if challengeID == "" {
		return nil, apperrors.InvalidArgument("challengeId is required")
	}
	challenge, err := cs.Store.Get(ctx, challengeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if challenge == nil || challenge.BoxID != caller.BoxID {
		return nil, apperrors.NotFound("challenge not found")
	}
	return challenge, nil
}

func (cs *ChallengeService) emitInvite(challenge models.Challenge, inviteeID string) {
	cs.emit("challenge_invite", map[string]string{
		"challengeId":   challenge.ChallengeID,
		"title":         challenge.Title,
		"participantId": inviteeID,
	})
}

func (cs *ChallengeService) emit(event string, payload interface{}) {
	if cs.Notify == nil {
		return
	}
	cs.Notify.Emit(event, payload)
}

func dedupeIDs(ids []string, exclude string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, id := range ids {
		if id == "" || id == exclude {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
