// Package notify delivers rendered announcements to Discord destinations.
package notify

import (
	"context"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/sirupsen/logrus"
)

// Poster is the slice of the Discord client the notifier needs.
type Poster interface {
	CreateMessage(ctx context.Context, channelID string, msg discord.Message) error
}

// Service posts announcements, absorbing every transport failure so a
// broken destination never aborts the rest of a scan.
type Service struct {
	poster Poster
}

// NewService creates a notifier over the given Discord client
func NewService(poster Poster) *Service {
	return &Service{poster: poster}
}

// Announce delivers msg to the destination channel or thread. It returns
// whether delivery succeeded and never propagates transport errors; the
// transport's own retry policy is the only retry there is.
func (s *Service) Announce(ctx context.Context, destinationID string, msg discord.Message) bool {
	if err := s.poster.CreateMessage(ctx, destinationID, msg); err != nil {
		logrus.Errorf("Failed to deliver announcement to %s: %v", destinationID, err)
		return false
	}

	logrus.Debugf("Delivered announcement to %s", destinationID)
	return true
}
