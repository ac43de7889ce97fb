package services

import (
	"context"
	"log"
	"time"

	"lumiere/internal/domain"
	"lumiere/internal/repos"

	"github.com/google/uuid"
)

// ListSyncer registers an address with the hosted mailing-list provider.
type ListSyncer interface {
	Register(ctx context.Context, email string) error
}

type SubscriberService struct {
	Subs   *repos.SubscriberRepo
	Syncer ListSyncer // nil when no provider is configured
}

func NewSubscriberService(subs *repos.SubscriberRepo, syncer ListSyncer) *SubscriberService {
	return &SubscriberService{Subs: subs, Syncer: syncer}
}

// Subscribe inserts at most one row per email; a repeat subscribe is a
// silent no-op. The provider sync is fire-and-forget: failures are logged,
// never surfaced to the visitor.
func (s *SubscriberService) Subscribe(email string) (bool, error) {
	created, err := s.Subs.Insert(domain.Subscriber{
		ID:    "sub-" + uuid.NewString(),
		Email: email,
	})
	if err != nil {
		return false, err
	}
	if created && s.Syncer != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Syncer.Register(ctx, email); err != nil {
				log.Printf("[subscribe] list sync failed: %v", err)
			}
		}()
	}
	return created, nil
}

func (s *SubscriberService) List() ([]domain.Subscriber, error) {
	return s.Subs.List()
}

func (s *SubscriberService) Count() (int, error) {
	return s.Subs.Count()
}
