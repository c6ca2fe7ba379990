package repositories

import (
	"context"

	"github.com/yigit/contestguard/internal/app/models"
)

// The methods below let the repository container serve as the snapshot
// source of the analysis service.

// GetTest retrieves a test, nil when missing
func (r *Repositories) GetTest(ctx context.Context, testID int64) (*models.Test, error) {
	return r.TestRepository.GetByID(ctx, testID)
}

// ListTestTakers retrieves the taker slots of a test
func (r *Repositories) ListTestTakers(ctx context.Context, testID int64) ([]models.TestTaker, error) {
	return r.TestTakerRepository.ListByTest(ctx, testID)
}

// ListParticipants retrieves participants by ID
func (r *Repositories) ListParticipants(ctx context.Context, ids []int64) ([]models.Participant, error) {
	return r.ParticipantRepository.ListByIDs(ctx, ids)
}

// ListTeamMemberships retrieves event memberships of participants
func (r *Repositories) ListTeamMemberships(ctx context.Context, participantIDs []int64, eventID int64) ([]models.TeamMembership, error) {
	return r.TeamRepository.ListMemberships(ctx, participantIDs, eventID)
}

// ListTeams retrieves teams by ID
func (r *Repositories) ListTeams(ctx context.Context, ids []int64) ([]models.Team, error) {
	return r.TeamRepository.ListByIDs(ctx, ids)
}

// ListAnswers retrieves the answers of takers
func (r *Repositories) ListAnswers(ctx context.Context, takerIDs []int64) ([]models.Answer, error) {
	return r.AnswerRepository.ListByTakers(ctx, takerIDs)
}

// ListPasteEvents retrieves the paste events of takers
func (r *Repositories) ListPasteEvents(ctx context.Context, takerIDs []int64) ([]models.TestEvent, error) {
	return r.TestEventRepository.ListPastesByTakers(ctx, takerIDs)
}
