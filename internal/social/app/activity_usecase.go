package app

import (
	"context"
	"time"

	"study_portal_service/internal/social/domain"
	"study_portal_service/internal/social/repository"
)

// knownUsersLimit size of the recently-seen user directory
const knownUsersLimit = 20

// ActivityUseCase visit tracking behind the social feed's "who is around"
// widgets
type ActivityUseCase struct {
	visitRepo repository.VisitRepository
}

// NewActivityUseCase init the activity use case
func NewActivityUseCase(visitRepo repository.VisitRepository) *ActivityUseCase {
	return &ActivityUseCase{visitRepo: visitRepo}
}

// RecordVisit note that the caller just opened the feed
func (uc *ActivityUseCase) RecordVisit(ctx context.Context, userID, name, role, profileImage string) error {
	return uc.visitRepo.Upsert(ctx, &domain.SocialVisit{
		UserID:       userID,
		Name:         name,
		Role:         role,
		ProfileImage: profileImage,
		LastVisit:    time.Now().UTC(),
	})
}

// ActiveUsers everyone seen within the last hour, most recent first
func (uc *ActivityUseCase) ActiveUsers(ctx context.Context) ([]domain.SocialVisit, error) {
	return uc.visitRepo.Active(ctx)
}

// KnownUsers recently seen users for the contact picker
func (uc *ActivityUseCase) KnownUsers(ctx context.Context) ([]domain.SocialVisit, error) {
	return uc.visitRepo.Known(ctx, knownUsersLimit)
}
