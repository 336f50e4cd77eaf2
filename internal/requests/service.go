package requests

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arman/volunteer-network-server/internal/httpx"
	"github.com/arman/volunteer-network-server/internal/models"
	"github.com/arman/volunteer-network-server/internal/monitoring"
)

// Store defines the request persistence operations the workflow needs. The
// implementation enforces uniqueness of (requestId, volunteerEmail) and
// reports httpx.ErrDuplicateRequest from Insert.
type Store interface {
	Insert(ctx context.Context, doc map[string]any) (string, error)
	ListByOwner(ctx context.Context, email string) ([]models.Request, error)
	Delete(ctx context.Context, id string) error
}

// CapacityStore takes one volunteer slot from a post. The decrement is
// conditional on remaining capacity: httpx.ErrCapacityExhausted when the
// counter is at zero, httpx.ErrNotFound when the post does not exist.
type CapacityStore interface {
	DecrementCapacity(ctx context.Context, postID string) error
}

// Service runs the volunteer request submission workflow, the one stateful
// process in the system.
type Service struct {
	requests Store
	posts    CapacityStore
	logger   *zap.Logger
}

func NewService(requests Store, posts CapacityStore, logger *zap.Logger) *Service {
	return &Service{requests: requests, posts: posts, logger: logger}
}

// Submit stores a request against the post and takes one capacity slot. The
// document is applicant-supplied and passes through verbatim, except that
// the post reference always comes from the path, never the body.
//
// The request insert runs first: on a duplicate the unique index rejects it
// and the counter is never touched. The decrement then runs as a single
// conditional update; when it matches nothing (post gone, or capacity
// already at zero) the just-inserted request is deleted again so a failed
// submission leaves no trace.
func (s *Service) Submit(ctx context.Context, postID string, doc map[string]any) error {
	doc["requestId"] = postID

	id, err := s.requests.Insert(ctx, doc)
	if err != nil {
		s.track(err)
		return err
	}

	if err := s.posts.DecrementCapacity(ctx, postID); err != nil {
		if delErr := s.requests.Delete(ctx, id); delErr != nil {
			s.logger.Error("request rollback failed",
				zap.String("request_id", id),
				zap.String("post_id", postID),
				zap.Error(delErr),
			)
		}
		s.track(err)
		return err
	}

	email, _ := doc["volunteerEmail"].(string)
	s.logger.Info("volunteer request accepted",
		zap.String("post_id", postID),
		zap.String("volunteer_email", email),
	)
	monitoring.TrackSubmission("accepted")
	return nil
}

func (s *Service) track(err error) {
	switch {
	case errors.Is(err, httpx.ErrDuplicateRequest):
		monitoring.TrackSubmission("duplicate")
	case errors.Is(err, httpx.ErrCapacityExhausted):
		monitoring.TrackSubmission("exhausted")
	case errors.Is(err, httpx.ErrNotFound), errors.Is(err, httpx.ErrInvalidID):
		monitoring.TrackSubmission("not_found")
	default:
		monitoring.TrackSubmission("error")
	}
}
