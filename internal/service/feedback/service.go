package feedback

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"recruitment-hub/internal/access"
	"recruitment-hub/internal/domain"
	"recruitment-hub/internal/repository"
)

var (
	ErrFeedbackNotFound  = domain.NewNotFoundError("Feedback")
	ErrInterviewNotFound = domain.NewNotFoundError("Interview")
	ErrNotInterviewer    = domain.NewForbiddenError("Only interviewers can submit feedback for this interview")
	ErrAlreadySubmitted  = domain.NewConflictError("You have already submitted feedback for this interview")
	ErrUpdateNotAuthor   = domain.NewForbiddenError("You can only update your own feedback")
	ErrDeleteNotAuthor   = domain.NewForbiddenError("You can only delete your own feedback")
)

type Service interface {
	Submit(ctx context.Context, caller *domain.Account, input domain.SubmitFeedbackInput) (*domain.Feedback, error)
	Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateFeedbackInput) (*domain.Feedback, error)
	Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error
	GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Feedback, error)
	ListByInterview(ctx context.Context, caller *domain.Account, interviewID uuid.UUID) ([]domain.Feedback, error)
	AverageRating(ctx context.Context, caller *domain.Account, interviewID uuid.UUID) (*domain.RatingSummary, error)
}

type service struct {
	feedbackRepo  repository.FeedbackRepository
	interviewRepo repository.InterviewRepository
	gate          access.Gate
}

func NewService(feedbackRepo repository.FeedbackRepository, interviewRepo repository.InterviewRepository, gate access.Gate) Service {
	return &service{
		feedbackRepo:  feedbackRepo,
		interviewRepo: interviewRepo,
		gate:          gate,
	}
}

// Submit stores one interviewer's scores. It triggers no transition and no notification.
func (s *service) Submit(ctx context.Context, caller *domain.Account, input domain.SubmitFeedbackInput) (*domain.Feedback, error) {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	interview, err := s.interviewRepo.GetByID(ctx, input.InterviewID)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, ErrInterviewNotFound
	}
	if !interview.HasInterviewer(caller.ID) {
		return nil, ErrNotInterviewer
	}

	existing, err := s.feedbackRepo.GetByAuthor(ctx, interview.ID, caller.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	feedback := &domain.Feedback{
		ID:          uuid.New(),
		InterviewID: interview.ID,
		AuthorID:    caller.ID,
	}
	feedback.Apply(input.FeedbackScores)

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}
	return feedback, nil
}

func (s *service) Update(ctx context.Context, caller *domain.Account, id uuid.UUID, input domain.UpdateFeedbackInput) (*domain.Feedback, error) {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionUpdate); err != nil {
		return nil, err
	}
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	feedback, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback.AuthorID != caller.ID {
		return nil, ErrUpdateNotAuthor
	}

	feedback.Apply(input.FeedbackScores)
	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *service) Delete(ctx context.Context, caller *domain.Account, id uuid.UUID) error {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionDelete); err != nil {
		return err
	}

	feedback, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if feedback.AuthorID != caller.ID {
		return ErrDeleteNotAuthor
	}
	return s.feedbackRepo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, caller *domain.Account, id uuid.UUID) (*domain.Feedback, error) {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionRead); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *service) ListByInterview(ctx context.Context, caller *domain.Account, interviewID uuid.UUID) ([]domain.Feedback, error) {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionList); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByInterview(ctx, interviewID)
}

// AverageRating is rounded to one decimal; an interview without feedback averages 0.
func (s *service) AverageRating(ctx context.Context, caller *domain.Account, interviewID uuid.UUID) (*domain.RatingSummary, error) {
	if err := s.gate.Authorize(caller, access.ResourceFeedback, access.ActionList); err != nil {
		return nil, err
	}

	avg, err := s.feedbackRepo.AverageRating(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return &domain.RatingSummary{
		InterviewID:   interviewID,
		AverageRating: math.Round(avg*10) / 10,
	}, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}
	return feedback, nil
}
