package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/contestguard/internal/analysis"
	"github.com/yigit/contestguard/internal/app/models"
	"github.com/yigit/contestguard/internal/pkg/apperrors"
)

// stubSource is an in-memory SnapshotSource. failOn names a method that
// returns errBoom; calls records the methods invoked in order.
type stubSource struct {
	test         *models.Test
	takers       []models.TestTaker
	participants []models.Participant
	memberships  []models.TeamMembership
	teams        []models.Team
	answers      []models.Answer
	pastes       []models.TestEvent

	failOn     string
	calls      []string
	gotEventID int64
}

var errBoom = errors.New("boom")

func (s *stubSource) hit(name string) error {
	s.calls = append(s.calls, name)
	if s.failOn == name {
		return errBoom
	}
	return nil
}

func (s *stubSource) GetTest(_ context.Context, _ int64) (*models.Test, error) {
	if err := s.hit("GetTest"); err != nil {
		return nil, err
	}
	return s.test, nil
}

func (s *stubSource) ListTestTakers(_ context.Context, _ int64) ([]models.TestTaker, error) {
	return s.takers, s.hit("ListTestTakers")
}

func (s *stubSource) ListParticipants(_ context.Context, _ []int64) ([]models.Participant, error) {
	return s.participants, s.hit("ListParticipants")
}

func (s *stubSource) ListTeamMemberships(_ context.Context, _ []int64, eventID int64) ([]models.TeamMembership, error) {
	s.gotEventID = eventID
	return s.memberships, s.hit("ListTeamMemberships")
}

func (s *stubSource) ListTeams(_ context.Context, _ []int64) ([]models.Team, error) {
	return s.teams, s.hit("ListTeams")
}

func (s *stubSource) ListAnswers(_ context.Context, _ []int64) ([]models.Answer, error) {
	return s.answers, s.hit("ListAnswers")
}

func (s *stubSource) ListPasteEvents(_ context.Context, _ []int64) ([]models.TestEvent, error) {
	return s.pastes, s.hit("ListPasteEvents")
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// contestFixture is a two-team test with one teamless taker
func contestFixture() *stubSource {
	return &stubSource{
		test: &models.Test{ID: 10, EventID: 77, Title: "Qualifier"},
		takers: []models.TestTaker{
			{ID: 1, TestID: 10, ParticipantID: 100},
			{ID: 2, TestID: 10, ParticipantID: 101},
			{ID: 3, TestID: 10, ParticipantID: 102},
		},
		participants: []models.Participant{
			{ID: 100, FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")},
			{ID: 101, FirstName: strPtr("Alan")},
			{ID: 102},
		},
		memberships: []models.TeamMembership{
			{ParticipantID: 100, TeamID: 5, DisplayCode: strPtr("T05")},
			{ParticipantID: 101, TeamID: 5},
		},
		teams: []models.Team{{ID: 5, EventID: 77, Name: "Engines"}},
		answers: []models.Answer{
			{TakerID: 1, QuestionID: 1, Content: strPtr("  forty two \n"), UpdatedAt: timePtr(base)},
			{TakerID: 2, QuestionID: 1, Content: strPtr("forty two"), UpdatedAt: timePtr(base.Add(5 * time.Second))},
			{TakerID: 3, QuestionID: 1, Content: nil, UpdatedAt: nil},
		},
		pastes: []models.TestEvent{
			{TakerID: 2, EventType: models.EventTypePaste, OccurredAt: base},
		},
	}
}

func TestSnapshotLoader_Load(t *testing.T) {
	src := contestFixture()
	snap, err := NewSnapshotLoader(src).Load(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), snap.TestID)
	assert.Equal(t, int64(77), snap.EventID)
	assert.Equal(t, int64(77), src.gotEventID, "memberships are scoped to the test's event")

	require.Len(t, snap.Takers, 3)
	assert.Equal(t, "Ada Lovelace", snap.Takers[0].FullName())
	require.NotNil(t, snap.Takers[0].TeamID)
	assert.Equal(t, int64(5), *snap.Takers[0].TeamID)
	assert.Equal(t, "T05", snap.Takers[0].TeamCode)
	assert.Equal(t, "Engines", snap.Takers[0].TeamName)
	assert.Equal(t, "", snap.Takers[1].TeamCode)
	assert.Equal(t, "Alan", snap.Takers[1].FullName())
	assert.Nil(t, snap.Takers[2].TeamID)
	assert.Equal(t, "", snap.Takers[2].FullName())

	require.Len(t, snap.Answers, 3)
	assert.Equal(t, "forty two", snap.Answers[0].Content)
	assert.Equal(t, snap.Answers[0].Content, snap.Answers[1].Content)
	assert.Equal(t, "", snap.Answers[2].Content)
	assert.True(t, snap.Answers[2].ModifiedAt.IsZero())

	require.Len(t, snap.Pastes, 1)
	assert.Equal(t, int64(2), snap.Pastes[0].TakerID)
	require.Len(t, snap.Teams, 1)
}

func TestSnapshotLoader_TestNotFound(t *testing.T) {
	src := &stubSource{}
	_, err := NewSnapshotLoader(src).Load(context.Background(), 10)
	assert.ErrorIs(t, err, apperrors.ErrTestNotFound)
	assert.Equal(t, []string{"GetTest"}, src.calls)
}

func TestSnapshotLoader_FailFast(t *testing.T) {
	steps := []string{
		"GetTest",
		"ListTestTakers",
		"ListParticipants",
		"ListTeamMemberships",
		"ListTeams",
		"ListAnswers",
		"ListPasteEvents",
	}
	for i, step := range steps {
		t.Run(step, func(t *testing.T) {
			src := contestFixture()
			src.failOn = step

			_, err := NewSnapshotLoader(src).Load(context.Background(), 10)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrDataSource)
			assert.ErrorIs(t, err, errBoom)
			assert.Equal(t, steps[:i+1], src.calls, "no fetch runs after a failure")
		})
	}
}

func TestSnapshotLoader_DuplicateMembershipKeepsFirst(t *testing.T) {
	src := contestFixture()
	src.memberships = append([]models.TeamMembership{{ParticipantID: 102, TeamID: 9}}, src.memberships...)
	src.memberships = append(src.memberships, models.TeamMembership{ParticipantID: 102, TeamID: 5})

	snap, err := NewSnapshotLoader(src).Load(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, snap.Takers[2].TeamID)
	assert.Equal(t, int64(9), *snap.Takers[2].TeamID)
	assert.Equal(t, "", snap.Takers[2].TeamName, "team 9 is not in the roster")
}

func TestSnapshotLoader_KeepsContentExact(t *testing.T) {
	src := contestFixture()
	src.answers = []models.Answer{
		{TakerID: 1, QuestionID: 1, Content: strPtr(`\Sigma X`), UpdatedAt: timePtr(base)},
		{TakerID: 2, QuestionID: 1, Content: strPtr(`\sigma  x`), UpdatedAt: timePtr(base)},
	}

	snap, err := NewSnapshotLoader(src).Load(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, snap.Answers, 2)
	assert.Equal(t, `\Sigma X`, snap.Answers[0].Content)
	assert.Equal(t, `\sigma  x`, snap.Answers[1].Content)

	for _, m := range analysis.Run(snap, analysis.DefaultParams()).Metrics {
		assert.Equal(t, 0.0, m.GlobalTimingScore, "taker %d", m.TakerID)
		assert.Equal(t, 0.0, m.GlobalMIAScore, "taker %d", m.TakerID)
	}
}
