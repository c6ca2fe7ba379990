package services

import (
	"context"

	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
	"github.com/yigit/contestguard/internal/pkg/helpers"
)

// SnapshotSource is the read-only data access the loader needs
type SnapshotSource interface {
	GetTest(ctx context.Context, testID int64) (*models.Test, error)
	ListTestTakers(ctx context.Context, testID int64) ([]models.TestTaker, error)
	ListParticipants(ctx context.Context, ids []int64) ([]models.Participant, error)
	ListTeamMemberships(ctx context.Context, participantIDs []int64, eventID int64) ([]models.TeamMembership, error)
	ListTeams(ctx context.Context, ids []int64) ([]models.Team, error)
	ListAnswers(ctx context.Context, takerIDs []int64) ([]models.Answer, error)
	ListPasteEvents(ctx context.Context, takerIDs []int64) ([]models.TestEvent, error)
}

// SnapshotLoader assembles an analysis snapshot for one test.
// Any failed fetch aborts the load; partial snapshots are never returned.
type SnapshotLoader struct {
	source SnapshotSource
}

// NewSnapshotLoader creates a new SnapshotLoader
func NewSnapshotLoader(source SnapshotSource) *SnapshotLoader {
	return &SnapshotLoader{source: source}
}

// Load fetches everything a run needs for testID
func (l *SnapshotLoader) Load(ctx context.Context, testID int64) (analysis.Snapshot, error) {
	test, err := l.source.GetTest(ctx, testID)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch test", err)
	}
	if test == nil {
		return analysis.Snapshot{}, apperrors.ErrTestNotFound
	}

	takerRows, err := l.source.ListTestTakers(ctx, testID)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch takers", err)
	}

	takerIDs := make([]int64, 0, len(takerRows))
	participantIDs := make([]int64, 0, len(takerRows))
	seenParticipant := make(map[int64]struct{}, len(takerRows))
	for _, tt := range takerRows {
		takerIDs = append(takerIDs, tt.ID)
		if _, ok := seenParticipant[tt.ParticipantID]; ok {
			continue
		}
		seenParticipant[tt.ParticipantID] = struct{}{}
		participantIDs = append(participantIDs, tt.ParticipantID)
	}

	participants, err := l.source.ListParticipants(ctx, participantIDs)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch participants", err)
	}

	memberships, err := l.source.ListTeamMemberships(ctx, participantIDs, test.EventID)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch team memberships", err)
	}

	// A participant belongs to at most one team per event; keep the first row
	membershipByParticipant := make(map[int64]models.TeamMembership, len(memberships))
	var teamIDs []int64
	seenTeam := make(map[int64]struct{})
	for _, m := range memberships {
		if _, ok := membershipByParticipant[m.ParticipantID]; ok {
			continue
		}
		membershipByParticipant[m.ParticipantID] = m
		if _, ok := seenTeam[m.TeamID]; !ok {
			seenTeam[m.TeamID] = struct{}{}
			teamIDs = append(teamIDs, m.TeamID)
		}
	}

	teamRows, err := l.source.ListTeams(ctx, teamIDs)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch teams", err)
	}

	answerRows, err := l.source.ListAnswers(ctx, takerIDs)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch answers", err)
	}

	pasteRows, err := l.source.ListPasteEvents(ctx, takerIDs)
	if err != nil {
		return analysis.Snapshot{}, apperrors.NewDataSourceError("fetch paste events", err)
	}

	return buildSnapshot(test, takerRows, participants, membershipByParticipant, teamRows, answerRows, pasteRows), nil
}

// buildSnapshot maps storage rows onto engine input, coalescing NULLs
func buildSnapshot(
	test *models.Test,
	takerRows []models.TestTaker,
	participants []models.Participant,
	memberships map[int64]models.TeamMembership,
	teamRows []models.Team,
	answerRows []models.Answer,
	pasteRows []models.TestEvent,
) analysis.Snapshot {
	participantByID := make(map[int64]models.Participant, len(participants))
	for _, p := range participants {
		participantByID[p.ID] = p
	}
	teamNameByID := make(map[int64]string, len(teamRows))
	teams := make([]analysis.Team, 0, len(teamRows))
	for _, t := range teamRows {
		teamNameByID[t.ID] = t.Name
		teams = append(teams, analysis.Team{ID: t.ID, Name: t.Name})
	}

	takers := make([]analysis.Taker, 0, len(takerRows))
	for _, tt := range takerRows {
		p := participantByID[tt.ParticipantID]
		taker := analysis.Taker{
			ID:            tt.ID,
			ParticipantID: tt.ParticipantID,
			FirstName:     helpers.StringValue(p.FirstName),
			LastName:      helpers.StringValue(p.LastName),
		}
		if m, ok := memberships[tt.ParticipantID]; ok {
			teamID := m.TeamID
			taker.TeamID = &teamID
			taker.TeamCode = helpers.StringValue(m.DisplayCode)
			taker.TeamName = teamNameByID[m.TeamID]
		}
		takers = append(takers, taker)
	}

	answers := make([]analysis.Answer, 0, len(answerRows))
	for _, a := range answerRows {
		answers = append(answers, analysis.Answer{
			TakerID:    a.TakerID,
			Content:    analysis.NormalizeContent(helpers.StringValue(a.Content)),
			ModifiedAt: helpers.TimeValue(a.UpdatedAt),
		})
	}

	pastes := make([]analysis.PasteEvent, 0, len(pasteRows))
	for _, e := range pasteRows {
		pastes = append(pastes, analysis.PasteEvent{TakerID: e.TakerID, OccurredAt: e.OccurredAt})
	}

	return analysis.Snapshot{
		TestID:  test.ID,
		EventID: test.EventID,
		Takers:  takers,
		Answers: answers,
		Pastes:  pastes,
		Teams:   teams,
	}
}
