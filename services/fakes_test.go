package services

import (
	"context"
	"sync"
	"time"

	"github.com/claytonnetvision/wodpulse-back/models"
)

// In-memory store fakes. They honor the same conditional-write semantics as
// the DynamoDB implementations so the services can be tested for the
// concurrency contracts they rely on.

type fakeMatchStore struct {
	mu    sync.Mutex
	edges map[string]map[string]models.MatchEdge
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{edges: map[string]map[string]models.MatchEdge{}}
}

func (f *fakeMatchStore) GetEdge(_ context.Context, actorID, targetID string) (*models.MatchEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.edges[actorID][targetID]
	if !ok {
		return nil, nil
	}
	return &edge, nil
}

func (f *fakeMatchStore) PutEdge(_ context.Context, edge models.MatchEdge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.edges[edge.ActorID] == nil {
		f.edges[edge.ActorID] = map[string]models.MatchEdge{}
	}
	f.edges[edge.ActorID][edge.TargetID] = edge
	return nil
}

// PromoteMutual flips both edges to mutual_match only while both are still
// likes, mirroring the transactional condition.
func (f *fakeMatchStore) PromoteMutual(_ context.Context, actorID, targetID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	forward, fok := f.edges[actorID][targetID]
	reverse, rok := f.edges[targetID][actorID]
	if !fok || !rok || !likeOrMutual(forward.Status) || !likeOrMutual(reverse.Status) {
		return false, nil
	}
	forward.Status = models.MatchStatusMutual
	reverse.Status = models.MatchStatusMutual
	f.edges[actorID][targetID] = forward
	f.edges[targetID][actorID] = reverse
	return true, nil
}

func (f *fakeMatchStore) DemoteMutual(_ context.Context, actorID, targetID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	forward, fok := f.edges[actorID][targetID]
	reverse, rok := f.edges[targetID][actorID]
	if !fok || !rok || forward.Status != models.MatchStatusMutual || reverse.Status != models.MatchStatusMutual {
		return false, nil
	}
	forward.Status = models.MatchStatusRejected
	reverse.Status = models.MatchStatusMatched
	f.edges[actorID][targetID] = forward
	f.edges[targetID][actorID] = reverse
	return true, nil
}

func (f *fakeMatchStore) ListEdgesFrom(_ context.Context, actorID string) ([]models.MatchEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edges := []models.MatchEdge{}
	for _, edge := range f.edges[actorID] {
		edges = append(edges, edge)
	}
	return edges, nil
}

func likeOrMutual(status string) bool {
	return status == models.MatchStatusMatched || status == models.MatchStatusMutual
}

type fakeMemberStore struct {
	members map[string]models.Member
}

func newFakeMemberStore(members ...models.Member) *fakeMemberStore {
	f := &fakeMemberStore{members: map[string]models.Member{}}
	for _, m := range members {
		f.members[m.MemberID] = m
	}
	return f
}

func (f *fakeMemberStore) Get(_ context.Context, memberID string) (*models.Member, error) {
	m, ok := f.members[memberID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeMemberStore) ListAll(_ context.Context) ([]models.Member, error) {
	all := []models.Member{}
	for _, m := range f.members {
		all = append(all, m)
	}
	return all, nil
}

func (f *fakeMemberStore) ListByBox(_ context.Context, boxID string) ([]models.Member, error) {
	members := []models.Member{}
	for _, m := range f.members {
		if m.BoxID == boxID {
			members = append(members, m)
		}
	}
	return members, nil
}

type fakeFriendStore struct {
	mu    sync.Mutex
	edges map[string]models.FriendEdge
}

func newFakeFriendStore() *fakeFriendStore {
	return &fakeFriendStore{edges: map[string]models.FriendEdge{}}
}

func friendKey(requesterID, targetID string) string {
	return requesterID + "|" + targetID
}

func (f *fakeFriendStore) Get(_ context.Context, requesterID, targetID string) (*models.FriendEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge, ok := f.edges[friendKey(requesterID, targetID)]
	if !ok {
		return nil, nil
	}
	return &edge, nil
}

func (f *fakeFriendStore) Put(_ context.Context, edge models.FriendEdge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edges[friendKey(edge.RequesterID, edge.TargetID)] = edge
	return nil
}

func (f *fakeFriendStore) SetAccepted(_ context.Context, requesterID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := friendKey(requesterID, targetID)
	edge, ok := f.edges[key]
	if !ok {
		return ErrConditionFailed
	}
	edge.Status = models.FriendStatusAccepted
	f.edges[key] = edge
	return nil
}

func (f *fakeFriendStore) Delete(_ context.Context, requesterID, targetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.edges, friendKey(requesterID, targetID))
	return nil
}

func (f *fakeFriendStore) ListByRequester(_ context.Context, requesterID string) ([]models.FriendEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edges := []models.FriendEdge{}
	for _, edge := range f.edges {
		if edge.RequesterID == requesterID {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

func (f *fakeFriendStore) ListByTarget(_ context.Context, targetID string) ([]models.FriendEdge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edges := []models.FriendEdge{}
	for _, edge := range f.edges {
		if edge.TargetID == targetID {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

type fakeChallengeStore struct {
	mu           sync.Mutex
	members      *fakeMemberStore
	challenges   map[string]models.Challenge
	participants map[string]map[string]models.ChallengeParticipant
	results      map[string]map[string]models.ChallengeResult
}

func newFakeChallengeStore(members *fakeMemberStore) *fakeChallengeStore {
	return &fakeChallengeStore{
		members:      members,
		challenges:   map[string]models.Challenge{},
		participants: map[string]map[string]models.ChallengeParticipant{},
		results:      map[string]map[string]models.ChallengeResult{},
	}
}

// CreateWithParticipants is all-or-nothing: an invitee missing from the
// roster, or rostered in another box, fails the whole write.
func (f *fakeChallengeStore) CreateWithParticipants(_ context.Context, challenge models.Challenge, participants []models.ChallengeParticipant, inviteeIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.challenges[challenge.ChallengeID]; exists {
		return ErrConditionFailed
	}
	for _, inviteeID := range inviteeIDs {
		member, ok := f.members.members[inviteeID]
		if !ok || member.BoxID != challenge.BoxID {
			return ErrConditionFailed
		}
	}
	f.challenges[challenge.ChallengeID] = challenge
	rows := map[string]models.ChallengeParticipant{}
	for _, p := range participants {
		rows[p.ParticipantID] = p
	}
	f.participants[challenge.ChallengeID] = rows
	return nil
}

func (f *fakeChallengeStore) Get(_ context.Context, challengeID string) (*models.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	challenge, ok := f.challenges[challengeID]
	if !ok {
		return nil, nil
	}
	return &challenge, nil
}

func (f *fakeChallengeStore) ListParticipants(_ context.Context, challengeID string) ([]models.ChallengeParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.ChallengeParticipant{}
	for _, p := range f.participants[challengeID] {
		rows = append(rows, p)
	}
	return rows, nil
}

func (f *fakeChallengeStore) GetParticipant(_ context.Context, challengeID, participantID string) (*models.ChallengeParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.participants[challengeID][participantID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeChallengeStore) SetParticipantStatus(_ context.Context, challengeID, participantID, status, respondedAt string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.participants[challengeID]
	if !ok {
		return ErrConditionFailed
	}
	p, ok := rows[participantID]
	if !ok {
		return ErrConditionFailed
	}
	p.Status = status
	p.RespondedAt = respondedAt
	rows[participantID] = p
	return nil
}

func (f *fakeChallengeStore) AddParticipant(_ context.Context, participant models.ChallengeParticipant) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.participants[participant.ChallengeID]
	if rows == nil {
		rows = map[string]models.ChallengeParticipant{}
		f.participants[participant.ChallengeID] = rows
	}
	if _, exists := rows[participant.ParticipantID]; exists {
		return false, nil
	}
	rows[participant.ParticipantID] = participant
	return true, nil
}

func (f *fakeChallengeStore) Activate(_ context.Context, challengeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	challenge, ok := f.challenges[challengeID]
	if !ok || challenge.Status != models.ChallengeStatusPending {
		return false, nil
	}
	challenge.Status = models.ChallengeStatusActive
	f.challenges[challengeID] = challenge
	return true, nil
}

func (f *fakeChallengeStore) DeleteCascade(_ context.Context, challengeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.challenges, challengeID)
	delete(f.participants, challengeID)
	delete(f.results, challengeID)
	return nil
}

func (f *fakeChallengeStore) PutResult(_ context.Context, result models.ChallengeResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.results[result.ChallengeID]
	if rows == nil {
		rows = map[string]models.ChallengeResult{}
		f.results[result.ChallengeID] = rows
	}
	rows[result.ParticipantID] = result
	return nil
}

func (f *fakeChallengeStore) ListResults(_ context.Context, challengeID string) ([]models.ChallengeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := []models.ChallengeResult{}
	for _, r := range f.results[challengeID] {
		results = append(results, r)
	}
	return results, nil
}

func (f *fakeChallengeStore) ListByParticipant(_ context.Context, participantID string) ([]models.ChallengeParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := []models.ChallengeParticipant{}
	for _, byParticipant := range f.participants {
		if p, ok := byParticipant[participantID]; ok {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

type fakeLedger struct {
	records []models.PerformanceRecord
}

func (f *fakeLedger) SumMetric(_ context.Context, participantID string, metric models.LeaderboardMetric, start, end time.Time) (float64, error) {
	startStr := start.UTC().Format(time.RFC3339)
	endStr := end.UTC().Format(time.RFC3339)
	total := 0.0
	for _, record := range f.records {
		if record.ParticipantID != participantID {
			continue
		}
		if record.SessionStartTime < startStr || record.SessionStartTime > endStr {
			continue
		}
		value := metric.Value(record)
		if metric.Aggregate == models.AggregateMax {
			if value > total {
				total = value
			}
		} else {
			total += value
		}
	}
	return total, nil
}

func (f *fakeLedger) ListBoxRange(_ context.Context, boxID string, start, end time.Time) ([]models.PerformanceRecord, error) {
	startStr := start.UTC().Format(time.RFC3339)
	endStr := end.UTC().Format(time.RFC3339)
	records := []models.PerformanceRecord{}
	for _, record := range f.records {
		if record.BoxID != boxID {
			continue
		}
		if record.SessionStartTime < startStr || record.SessionStartTime >= endStr {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Emit(event string, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}
