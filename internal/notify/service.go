package notify

import "context"

// Service fans notifications out to a user and to the configured admin
// recipients.
type Service struct {
	sink     Sink
	adminIDs []int64
}

func NewService(sink Sink, adminIDs []int64) *Service {
	return &Service{sink: sink, adminIDs: adminIDs}
}

func (s *Service) NotifyUser(ctx context.Context, userID int64, message string) error {
	return s.sink.Notify(ctx, []int64{userID}, message)
}

func (s *Service) NotifyAdmins(ctx context.Context, message string) error {
	if len(s.adminIDs) == 0 {
		return nil
	}
	return s.sink.Notify(ctx, s.adminIDs, message)
}
