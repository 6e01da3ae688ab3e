package usecase

import "context"

// Health reports that the service is accepting requests.
func (s *Usecase) Health(ctx context.Context) string {
	_, span := s.startSpan(ctx, "Health")
	defer span.End()

	return "API is running...!"
}
