package items

import (
	"context"
	"log"
	"sync"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
	"github.com/zhouzirui/items-api/backend/internal/service/events"
	"github.com/zhouzirui/items-api/backend/internal/storage"
)

// Publisher receives committed changes.
type Publisher interface {
	Publish(ev events.Event)
}

// Service owns the item collection. Each call runs a full
// load, validate, mutate, save cycle while holding mu, so concurrent
// requests never interleave their read-modify-write steps.
type Service struct {
	mu        sync.Mutex
	backend   storage.Backend
	publisher Publisher
}

// NewService wraps backend. publisher may be nil.
func NewService(backend storage.Backend, publisher Publisher) *Service {
	return &Service{
		backend:   backend,
		publisher: publisher,
	}
}

// ListAll returns every item in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// FindByName returns the item whose name matches exactly.
func (s *Service) FindByName(ctx context.Context, name string) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return item.Item{}, err
	}

	idx := item.IndexOf(all, name)
	if idx < 0 {
		return item.Item{}, notFoundError(name)
	}
	return all[idx], nil
}

// Create appends a new item. Names must be unique.
func (s *Service) Create(ctx context.Context, in item.CreateInput) (item.Item, error) {
	if err := in.Validate(); err != nil {
		return item.Item{}, NewValidationError(msgCreateRequired, err)
	}
	created := in.Item()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return item.Item{}, err
	}
	if item.IndexOf(all, created.Name) >= 0 {
		return item.Item{}, duplicateError(created.Name)
	}

	if err := s.save(ctx, append(all, created)); err != nil {
		return item.Item{}, err
	}

	s.publish(events.NewEvent(events.TypeAdded, created.Name, &created))
	return created, nil
}

// Update overwrites the supplied fields of the item called origName.
func (s *Service) Update(ctx context.Context, origName string, in item.UpdateInput) (item.Item, error) {
	if err := in.Validate(); err != nil {
		return item.Item{}, NewValidationError(msgUpdateRequired, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return item.Item{}, err
	}

	idx := item.IndexOf(all, origName)
	if idx < 0 {
		return item.Item{}, notFoundError(origName)
	}
	if newName, ok := in.NewName(); ok && newName != origName && item.IndexOf(all, newName) >= 0 {
		return item.Item{}, duplicateError(newName)
	}

	updated := in.Apply(all[idx])
	all[idx] = updated
	if err := s.save(ctx, all); err != nil {
		return item.Item{}, err
	}

	s.publish(events.NewEvent(events.TypeUpdated, origName, &updated))
	return updated, nil
}

// Remove deletes the item called name.
func (s *Service) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := item.IndexOf(all, name)
	if idx < 0 {
		return notFoundError(name)
	}

	remaining := append(all[:idx:idx], all[idx+1:]...)
	if err := s.save(ctx, remaining); err != nil {
		return err
	}

	s.publish(events.NewEvent(events.TypeDeleted, name, nil))
	return nil
}

func (s *Service) load(ctx context.Context) ([]item.Item, error) {
	all, err := s.backend.Load(ctx)
	if err != nil {
		log.Printf("[items] failed to load items: %v", err)
		return nil, storageError(msgReadFailed, err)
	}
	return all, nil
}

func (s *Service) save(ctx context.Context, all []item.Item) error {
	if err := s.backend.Save(ctx, all); err != nil {
		log.Printf("[items] failed to save items: %v", err)
		return storageError(msgWriteFailed, err)
	}
	return nil
}

func (s *Service) publish(ev events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}
