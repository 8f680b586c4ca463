// Package admin drives the administrative back office: editable
// working copies of every collection, single-record edit sessions, and
// commit/remove flows that treat the remote API as the source of
// truth (reload-after-write, never an optimistic local patch).
package admin

import (
	"context"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
	comforthttp "github.com/comfort-asbl/comfort-site-tools/comfort/http"
)

// Draft is a record in the loose remote shape. The admin layer and
// the remote package are the only places this shape is allowed.
type Draft = map[string]any

// Service is what the orchestrator needs from the data layer: raw
// reloads and the three mutating calls. Reads are total, writes
// surface errors.
type Service interface {
	// Reload refreshes the shared store copy of kind and returns
	// fresh raw records for the admin working copy.
	Reload(ctx context.Context, kind comfort.Kind) []Draft

	Create(ctx context.Context, kind comfort.Kind, payload any) error
	Update(ctx context.Context, kind comfort.Kind, id string, payload any) error
	Delete(ctx context.Context, kind comfort.Kind, id string) error
}

type clientService struct {
	client comforthttp.Client
	store  *comfort.Store
}

// NewService binds the orchestrator to the site client and the shared
// store. The store refresh rides along with every admin reload so the
// public pages pick up administrative changes immediately.
func NewService(client comforthttp.Client, store *comfort.Store) Service {
	return &clientService{client: client, store: store}
}

func (s *clientService) Reload(ctx context.Context, kind comfort.Kind) []Draft {
	if s.store != nil {
		s.store.Refresh(ctx, kind)
	}
	records, _ := s.client.RawRecords(ctx, kind)
	return records
}

func (s *clientService) Create(ctx context.Context, kind comfort.Kind, payload any) error {
	return s.client.CreateRecord(ctx, kind, payload)
}

func (s *clientService) Update(ctx context.Context, kind comfort.Kind, id string, payload any) error {
	return s.client.UpdateRecord(ctx, kind, id, payload)
}

func (s *clientService) Delete(ctx context.Context, kind comfort.Kind, id string) error {
	return s.client.DeleteRecord(ctx, kind, id)
}
