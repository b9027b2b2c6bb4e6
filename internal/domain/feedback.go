package domain

import (
	"time"

	"github.com/google/uuid"
)

type Recommendation string

const (
	RecommendHire   Recommendation = "HIRE"
	RecommendNoHire Recommendation = "NO_HIRE"
	RecommendMaybe  Recommendation = "MAYBE"
)

type Feedback struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	InterviewID     uuid.UUID      `json:"interview_id" db:"interview_id"`
	AuthorID        uuid.UUID      `json:"author_id" db:"author_id"`
	Rating          int            `json:"rating" db:"rating"`
	TechnicalSkills int            `json:"technical_skills" db:"technical_skills"`
	Communication   int            `json:"communication" db:"communication"`
	CultureFit      int            `json:"culture_fit" db:"culture_fit"`
	Comments        string         `json:"comments" db:"comments"`
	Recommendation  Recommendation `json:"recommendation" db:"recommendation"`
	IsDeleted       bool           `json:"-" db:"is_deleted"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// FeedbackScores holds the rated part of a feedback, shared by submit and update.
type FeedbackScores struct {
	Rating          int            `json:"rating" validate:"gte=1,lte=5"`
	TechnicalSkills int            `json:"technical_skills" validate:"gte=1,lte=5"`
	Communication   int            `json:"communication" validate:"gte=1,lte=5"`
	CultureFit      int            `json:"culture_fit" validate:"gte=1,lte=5"`
	Comments        string         `json:"comments" validate:"required,min=10,max=5000"`
	Recommendation  Recommendation `json:"recommendation" validate:"required,oneof=HIRE NO_HIRE MAYBE"`
}

type SubmitFeedbackInput struct {
	InterviewID uuid.UUID `json:"interview_id" validate:"required"`
	FeedbackScores
}

type UpdateFeedbackInput struct {
	FeedbackScores
}

func (f *Feedback) Apply(scores FeedbackScores) {
	f.Rating = scores.Rating
	f.TechnicalSkills = scores.TechnicalSkills
	f.Communication = scores.Communication
	f.CultureFit = scores.CultureFit
	f.Comments = scores.Comments
	f.Recommendation = scores.Recommendation
}

type RatingSummary struct {
	InterviewID   uuid.UUID `json:"interview_id"`
	AverageRating float64   `json:"average_rating"`
}
