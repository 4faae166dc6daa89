package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/metrics"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/repository"
)

type RatingService struct {
	ratings repository.RatingStore
	logger  *zerolog.Logger
}

func NewRatingService(ratings repository.RatingStore, logger *zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, logger: logger}
}

// SubmitRatingInput is one rating submission. A nil Comment is stored as ""
// on insert and on update.
type SubmitRatingInput struct {
	UserID  int64
	PlaceID int64
	Stars   int
	Comment *string
}

// SubmitRating creates the rating of (UserID, PlaceID) or overwrites its
// stars and comment. The last writer wins.
func (s *RatingService) SubmitRating(ctx context.Context, in SubmitRatingInput) (model.SubmitResult, error) {
	if in.Stars < model.MinStars || in.Stars > model.MaxStars {
		return model.SubmitResult{}, errs.InvalidField("stars", "must be between 1 and 5")
	}
	if in.UserID <= 0 {
		return model.SubmitResult{}, errs.InvalidField("user_id", "must be a positive id")
	}
	if in.PlaceID <= 0 {
		return model.SubmitResult{}, errs.InvalidField("place_id", "must be a positive id")
	}

	comment := ""
	if in.Comment != nil {
		comment = *in.Comment
	}

	ratingID, created, err := s.ratings.Upsert(ctx, in.UserID, in.PlaceID, in.Stars, comment)
	if err != nil {
		return model.SubmitResult{}, err
	}

	outcome := model.OutcomeUpdated
	if created {
		outcome = model.OutcomeCreated
	}
	metrics.RecordRatingSubmission(string(outcome))

	s.logger.Debug().
		Int64("user_id", in.UserID).
		Int64("place_id", in.PlaceID).
		Int64("rating_id", ratingID).
		Str("outcome", string(outcome)).
		Msg("rating submitted")

	return model.SubmitResult{Outcome: outcome, RatingID: ratingID}, nil
}
