package admin

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comfort-asbl/comfort-site-tools/comfort"
)

type fakeService struct {
	mu          sync.Mutex
	events      []string
	reloadDelay time.Duration
	records     map[comfort.Kind][]Draft

	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeService) log(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeService) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func (f *fakeService) Reload(ctx context.Context, kind comfort.Kind) []Draft {
	if f.reloadDelay > 0 {
		time.Sleep(f.reloadDelay)
	}
	f.log("reload " + string(kind))
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[kind]
}

func (f *fakeService) Create(ctx context.Context, kind comfort.Kind, payload any) error {
	f.log("create " + string(kind))
	return f.createErr
}

func (f *fakeService) Update(ctx context.Context, kind comfort.Kind, id string, payload any) error {
	f.log("update " + string(kind) + " " + id)
	return f.updateErr
}

func (f *fakeService) Delete(ctx context.Context, kind comfort.Kind, id string) error {
	f.log("delete " + string(kind) + " " + id)
	return f.deleteErr
}

type fakeUploader struct {
	path    string
	err     error
	release chan struct{}
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, file io.Reader, folder string) (string, error) {
	if f.release != nil {
		<-f.release
	}
	return f.path, f.err
}

func superadmin() comfort.User {
	return comfort.User{ID: "1", Username: "g.muruwa", Role: comfort.RoleSuperAdmin}
}

func newOrchestrator(t *testing.T, svc Service, uploader Uploader) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(superadmin(), svc, uploader, nil)
	require.NoError(t, err)
	return o
}

func TestNewOrchestratorRejectsNonSuperadmins(t *testing.T) {
	for _, role := range []comfort.Role{comfort.RoleUser, comfort.RoleEditor, comfort.RoleAdmin} {
		_, err := NewOrchestrator(comfort.User{Role: role}, &fakeService{}, nil, nil)
		assert.ErrorIs(t, err, ErrNotAuthorized, "role %s", role)
	}
}

func TestCommitCreatesWhenDraftHasNoID(t *testing.T) {
	svc := &fakeService{records: map[comfort.Kind][]Draft{
		comfort.KindPartners: {{"id": "1", "nom": "Fondation Virunga"}},
	}}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.BeginCreate(comfort.KindPartners))
	assert.Equal(t, StateCreating, o.State())
	require.NoError(t, o.SetField("nom", "Nouvel Ami"))

	require.NoError(t, o.Commit(context.Background()))

	assert.Equal(t, StateIdle, o.State())
	assert.Nil(t, o.DraftCopy())
	assert.Equal(t, []string{"create partners", "reload partners"}, svc.Events())
	assert.Len(t, o.Records(comfort.KindPartners), 1)
}

func TestCommitUpdatesWhenDraftHasID(t *testing.T) {
	svc := &fakeService{records: map[comfort.Kind][]Draft{}}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.BeginEdit(comfort.KindProjects, Draft{"id": "7", "titre": "Ancien"}))
	require.NoError(t, o.SetField("titre", "Nouveau"))
	require.NoError(t, o.Commit(context.Background()))

	assert.Equal(t, []string{"update actions 7", "reload actions"}, svc.Events())
}

func TestBeginEditCopiesTheRecord(t *testing.T) {
	o := newOrchestrator(t, &fakeService{}, nil)

	record := Draft{"id": "7", "titre": "Original"}
	require.NoError(t, o.BeginEdit(comfort.KindProjects, record))
	require.NoError(t, o.SetField("titre", "Modifié"))

	assert.Equal(t, "Original", record["titre"])
	assert.Equal(t, "Modifié", o.DraftCopy()["titre"])
}

func TestOnlyOneSessionAtATime(t *testing.T) {
	o := newOrchestrator(t, &fakeService{}, nil)

	require.NoError(t, o.BeginCreate(comfort.KindProjects))
	assert.ErrorIs(t, o.BeginCreate(comfort.KindArticles), ErrSessionOpen)
	assert.ErrorIs(t, o.BeginEdit(comfort.KindArticles, Draft{}), ErrSessionOpen)
}

func TestCommitFailureKeepsTheDraft(t *testing.T) {
	svc := &fakeService{createErr: errors.New("validation: titre manquant")}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.BeginCreate(comfort.KindArticles))
	require.NoError(t, o.SetField("auteur", "COMFORT Team"))

	err := o.Commit(context.Background())
	require.EqualError(t, err, "validation: titre manquant")

	assert.Equal(t, StateError, o.State())
	assert.Equal(t, "COMFORT Team", o.DraftCopy()["auteur"])
	require.Error(t, o.Err())

	// No reload happened: remote state did not change.
	assert.Equal(t, []string{"create articles"}, svc.Events())

	// Retry from the preserved draft succeeds once the service recovers.
	svc.createErr = nil
	require.NoError(t, o.Commit(context.Background()))
	assert.Equal(t, StateIdle, o.State())
}

func TestDismissDiscardsADraftPreservedByError(t *testing.T) {
	svc := &fakeService{createErr: errors.New("boom")}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.BeginCreate(comfort.KindArticles))
	require.Error(t, o.Commit(context.Background()))
	require.NoError(t, o.Dismiss())

	assert.Equal(t, StateIdle, o.State())
	assert.Nil(t, o.DraftCopy())
	assert.NoError(t, o.Err())
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	svc := &fakeService{}
	o := newOrchestrator(t, svc, nil)

	err := o.Remove(context.Background(), comfort.KindPartners, "2", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Empty(t, svc.Events())
}

func TestFailedRemoveLeavesTheCollectionVisible(t *testing.T) {
	svc := &fakeService{
		deleteErr: errors.New("conflit"),
		records: map[comfort.Kind][]Draft{
			comfort.KindPartners: {{"id": "2", "nom": "Ministère de la Santé RDC"}},
		},
	}
	o := newOrchestrator(t, svc, nil)
	o.Load(context.Background())
	require.Len(t, o.Records(comfort.KindPartners), 1)

	err := o.Remove(context.Background(), comfort.KindPartners, "2", true)
	require.EqualError(t, err, "conflit")

	// No optimistic removal: the partner is still in the working copy.
	assert.Len(t, o.Records(comfort.KindPartners), 1)
}

func TestSuccessfulRemoveReloads(t *testing.T) {
	svc := &fakeService{records: map[comfort.Kind][]Draft{
		comfort.KindPartners: {},
	}}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.Remove(context.Background(), comfort.KindPartners, "2", true))
	assert.Equal(t, []string{"delete partners 2", "reload partners"}, svc.Events())
}

func TestWriteReloadCyclesSerializePerKind(t *testing.T) {
	svc := &fakeService{
		reloadDelay: 100 * time.Millisecond,
		records:     map[comfort.Kind][]Draft{},
	}
	o := newOrchestrator(t, svc, nil)

	require.NoError(t, o.BeginCreate(comfort.KindProjects))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, o.Commit(context.Background()))
	}()
	// Give the commit a head start so its write is in flight first.
	time.Sleep(20 * time.Millisecond)
	go func() {
		defer wg.Done()
		assert.NoError(t, o.Remove(context.Background(), comfort.KindProjects, "9", true))
	}()
	wg.Wait()

	// The remove must not start until the commit's reload finished.
	assert.Equal(t, []string{
		"create actions",
		"reload actions",
		"delete actions 9",
		"reload actions",
	}, svc.Events())
}

func TestCommitBlockedWhileUploadInFlight(t *testing.T) {
	release := make(chan struct{})
	uploader := &fakeUploader{path: "assets/images/projets/e.jpg", release: release}
	svc := &fakeService{records: map[comfort.Kind][]Draft{}}
	o := newOrchestrator(t, svc, uploader)

	require.NoError(t, o.BeginCreate(comfort.KindProjects))

	done := make(chan error, 1)
	go func() {
		done <- o.AttachAsset(context.Background(), "image_url", "e.jpg", strings.NewReader("img"), "projets")
	}()

	// The upload has not finished; committing now would race it.
	time.Sleep(20 * time.Millisecond)
	assert.ErrorIs(t, o.Commit(context.Background()), ErrUploadsPending)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "assets/images/projets/e.jpg", o.DraftCopy()["image_url"])
	require.NoError(t, o.Commit(context.Background()))
}

func TestAttachAssetSurfacesUploadFailures(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("dossier invalide")}
	o := newOrchestrator(t, &fakeService{}, uploader)

	require.NoError(t, o.BeginCreate(comfort.KindProjects))
	err := o.AttachAsset(context.Background(), "image_url", "x.jpg", strings.NewReader("x"), "???")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dossier invalide")

	// A failed upload leaves no pending state behind.
	assert.NoError(t, o.Commit(context.Background()))
}

func TestAttachAssetRequiresAnOpenSession(t *testing.T) {
	o := newOrchestrator(t, &fakeService{}, &fakeUploader{})
	err := o.AttachAsset(context.Background(), "image_url", "x.jpg", strings.NewReader("x"), "uploads")
	assert.ErrorIs(t, err, ErrNoSession)
}
