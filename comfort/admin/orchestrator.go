package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
)

// SessionState tracks the edit-session (modal) lifecycle for the
// record currently being worked on.
type SessionState string

const (
	StateIdle     SessionState = "idle"
	StateCreating SessionState = "creating"
	StateEditing  SessionState = "editing"
	StateSaving   SessionState = "saving"

	// StateError keeps the modal open with the draft intact so the
	// operator can retry without re-entering anything.
	StateError SessionState = "error"
)

var (
	ErrNotAuthorized  = errors.New("administrator access requires the superadmin role")
	ErrSessionOpen    = errors.New("an edit session is already open")
	ErrNoSession      = errors.New("no edit session is open")
	ErrSaveInFlight   = errors.New("a save is already in flight")
	ErrNotConfirmed   = errors.New("removal requires explicit confirmation")
	ErrUploadsPending = errors.New("an asset upload is still in flight for this draft")
)

// Uploader stores a binary asset and returns its relative path.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader, folder string) (string, error)
}

// EditableKinds lists the collections the back office manages.
func EditableKinds() []comfort.Kind {
	return []comfort.Kind{
		comfort.KindProjects,
		comfort.KindArticles,
		comfort.KindPartners,
		comfort.KindUsers,
		comfort.KindDonations,
	}
}

// Orchestrator owns the administrative working copies of each
// collection and at most one edit session at a time. Every write is
// followed by a full reload of the affected collection; write+reload
// cycles are serialized per kind so a stale reload can never overwrite
// a newer one.
type Orchestrator struct {
	svc      Service
	uploader Uploader
	logger   *zap.Logger
	actor    comfort.User

	mu          sync.Mutex
	state       SessionState
	kind        comfort.Kind
	draft       Draft
	lastErr     error
	pending     map[string]struct{}
	collections map[comfort.Kind][]Draft

	inflightMu sync.Mutex
	inflight   map[comfort.Kind]*sync.Mutex
}

// NewOrchestrator refuses non-superadmin actors outright: the
// authorization check happens before any administrative state exists,
// not just before the first network call.
func NewOrchestrator(actor comfort.User, svc Service, uploader Uploader, logger *zap.Logger) (*Orchestrator, error) {
	if !actor.CanAdminister() {
		return nil, ErrNotAuthorized
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		svc:         svc,
		uploader:    uploader,
		logger:      logger,
		actor:       actor,
		state:       StateIdle,
		pending:     make(map[string]struct{}),
		collections: make(map[comfort.Kind][]Draft),
		inflight:    make(map[comfort.Kind]*sync.Mutex),
	}, nil
}

// Load populates the working copies for every editable collection.
func (o *Orchestrator) Load(ctx context.Context) {
	for _, kind := range EditableKinds() {
		records := o.svc.Reload(ctx, kind)
		o.mu.Lock()
		o.collections[kind] = records
		o.mu.Unlock()
	}
}

// Records returns the working copy of a collection. It is the source
// of truth for admin rendering until the next reload.
func (o *Orchestrator) Records(kind comfort.Kind) []Draft {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.collections[kind]
}

func (o *Orchestrator) State() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) ActiveKind() comfort.Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.kind
}

// Err returns the error surfaced by the last failed save, if the
// session is in StateError.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// DraftCopy returns a shallow copy of the open draft for rendering.
func (o *Orchestrator) DraftCopy() Draft {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.draft == nil {
		return nil
	}
	copied := make(Draft, len(o.draft))
	for k, v := range o.draft {
		copied[k] = v
	}
	return copied
}

// BeginCreate opens an edit session over an empty draft.
func (o *Orchestrator) BeginCreate(kind comfort.Kind) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateIdle {
		return ErrSessionOpen
	}

	o.state = StateCreating
	o.kind = kind
	o.draft = Draft{}
	o.lastErr = nil
	return nil
}

// BeginEdit opens an edit session over a shallow copy of record.
// Edits never touch the working copy or the shared store directly.
func (o *Orchestrator) BeginEdit(kind comfort.Kind, record Draft) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateIdle {
		return ErrSessionOpen
	}

	draft := make(Draft, len(record))
	for k, v := range record {
		draft[k] = v
	}

	o.state = StateEditing
	o.kind = kind
	o.draft = draft
	o.lastErr = nil
	return nil
}

// SetField updates one field of the open draft.
func (o *Orchestrator) SetField(field string, value any) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateCreating, StateEditing, StateError:
		o.draft[field] = value
		return nil
	case StateSaving:
		return ErrSaveInFlight
	default:
		return ErrNoSession
	}
}

// Dismiss closes the session and discards the draft. It is the only
// way to drop a draft preserved by a failed save.
func (o *Orchestrator) Dismiss() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateSaving {
		return ErrSaveInFlight
	}

	o.state = StateIdle
	o.kind = ""
	o.draft = nil
	o.lastErr = nil
	return nil
}

// AttachAsset uploads a file and writes its stored path into the named
// draft field. Uploads for different fields run independently; Commit
// is blocked while any of them is still in flight.
func (o *Orchestrator) AttachAsset(ctx context.Context, field, filename string, file io.Reader, folder string) error {
	o.mu.Lock()
	switch o.state {
	case StateCreating, StateEditing, StateError:
	case StateSaving:
		o.mu.Unlock()
		return ErrSaveInFlight
	default:
		o.mu.Unlock()
		return ErrNoSession
	}
	o.pending[field] = struct{}{}
	o.mu.Unlock()

	path, err := o.uploader.Upload(ctx, filename, file, folder)

	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.pending, field)

	if err != nil {
		return fmt.Errorf("upload for field %q failed: %w", field, err)
	}

	// The session may have been dismissed while the upload ran.
	if o.draft != nil {
		o.draft[field] = path
	}
	return nil
}

// Commit saves the open draft: create when it has no id, update
// otherwise. On success the affected collection is fully reloaded from
// the remote service, which stays authoritative after every write. On
// failure the draft is preserved and the error surfaced.
func (o *Orchestrator) Commit(ctx context.Context) error {
	o.mu.Lock()
	switch o.state {
	case StateCreating, StateEditing, StateError:
	case StateSaving:
		o.mu.Unlock()
		return ErrSaveInFlight
	default:
		o.mu.Unlock()
		return ErrNoSession
	}

	if len(o.pending) > 0 {
		o.mu.Unlock()
		return ErrUploadsPending
	}

	kind := o.kind
	id := recordID(o.draft)
	payload := make(Draft, len(o.draft))
	for k, v := range o.draft {
		payload[k] = v
	}
	o.state = StateSaving
	o.mu.Unlock()

	lock := o.kindLock(kind)
	lock.Lock()
	defer lock.Unlock()

	var err error
	if id == "" {
		err = o.svc.Create(ctx, kind, payload)
	} else {
		err = o.svc.Update(ctx, kind, id, payload)
	}

	if err != nil {
		o.logger.Warn("save failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Error(err))
		o.mu.Lock()
		o.state = StateError
		o.lastErr = err
		o.mu.Unlock()
		return err
	}

	records := o.svc.Reload(ctx, kind)

	o.mu.Lock()
	o.collections[kind] = records
	o.state = StateIdle
	o.kind = ""
	o.draft = nil
	o.lastErr = nil
	o.mu.Unlock()

	o.logger.Info("record saved",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("actor", o.actor.Username))
	return nil
}

// Remove deletes a record after an explicit confirmation. On failure
// the working copy is left untouched: the record stays visible, no
// optimistic removal happens.
func (o *Orchestrator) Remove(ctx context.Context, kind comfort.Kind, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	lock := o.kindLock(kind)
	lock.Lock()
	defer lock.Unlock()

	if err := o.svc.Delete(ctx, kind, id); err != nil {
		o.logger.Warn("delete failed",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Error(err))
		return err
	}

	records := o.svc.Reload(ctx, kind)

	o.mu.Lock()
	o.collections[kind] = records
	o.mu.Unlock()

	o.logger.Info("record removed",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.String("actor", o.actor.Username))
	return nil
}

// kindLock serializes write+reload cycles per collection.
func (o *Orchestrator) kindLock(kind comfort.Kind) *sync.Mutex {
	o.inflightMu.Lock()
	defer o.inflightMu.Unlock()
	lock, ok := o.inflight[kind]
	if !ok {
		lock = &sync.Mutex{}
		o.inflight[kind] = lock
	}
	return lock
}

// recordID digs the id out of a draft, whatever JSON type it decoded
// into. Drafts without an id are creations.
func recordID(draft Draft) string {
	switch v := draft["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
