package store

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/client/client"
	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory client.Client. Setting gate makes every call
// wait until the channel is closed or receives.
type fakeClient struct {
	mu      sync.Mutex
	entries []models.KnowledgeEntry
	nextID  int
	failOn  map[string]error
	gate    chan struct{}
	started chan string
}

var _ client.Client = (*fakeClient)(nil)

func newFake(entries ...models.KnowledgeEntry) *fakeClient {
	return &fakeClient{entries: entries, failOn: map[string]error{}, nextID: 100}
}

func (f *fakeClient) wait(ctx context.Context, name string) error {
	if f.started != nil {
		f.started <- name
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failOn[name]
}

func (f *fakeClient) ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	if err := f.wait(ctx, "list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.KnowledgeEntry(nil), f.entries...), nil
}

func (f *fakeClient) GetEntry(ctx context.Context, id string) (models.KnowledgeEntry, error) {
	if err := f.wait(ctx, "get"); err != nil {
		return models.KnowledgeEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.KnowledgeEntry{}, &client.TransportError{Message: client.MsgFetchEntry, Status: http.StatusNotFound}
}

func (f *fakeClient) CreateEntry(ctx context.Context, in models.EntryInput) (models.KnowledgeEntry, error) {
	if err := f.wait(ctx, "create"); err != nil {
		return models.KnowledgeEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := models.NewEntry{EntryInput: in, ID: string(rune('0' + f.nextID%10)), CreatedAt: "2024-06-01"}.Entry()
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, id string, p models.EntryPatch) (models.KnowledgeEntry, error) {
	if err := f.wait(ctx, "update"); err != nil {
		return models.KnowledgeEntry{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries[i] = p.Apply(e)
			return f.entries[i], nil
		}
	}
	return models.KnowledgeEntry{}, &client.TransportError{Message: client.MsgUpdateEntry, Status: http.StatusNotFound}
}

func (f *fakeClient) DeleteEntry(ctx context.Context, id string) error {
	if err := f.wait(ctx, "delete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return &client.TransportError{Message: client.MsgDeleteEntry, Status: http.StatusNotFound}
}

func (f *fakeClient) fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[op] = err
}

func TestStore_FetchAll(t *testing.T) {
	fc := newFake(eA, eB)
	s := New(fc, nil)

	got, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.KnowledgeEntry{eA, eB}, got)

	st := s.State()
	assert.Equal(t, []models.KnowledgeEntry{eA, eB}, st.Entries)
	assert.False(t, st.Loading)
	assert.Equal(t, Stats{Total: 2, Certified: 1, Training: 1}, s.Stats())

	e, ok := s.Entry("b")
	assert.True(t, ok)
	assert.Equal(t, eB, e)
	_, ok = s.Entry("zz")
	assert.False(t, ok)
}

func TestStore_FetchAllFailureKeepsEntries(t *testing.T) {
	fc := newFake(eA)
	s := New(fc, nil)
	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)

	fc.fail("list", &client.TransportError{Message: client.MsgFetchEntries, Status: 500})
	_, err = s.FetchAll(context.Background())
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, client.MsgFetchEntries, st.Error)
	assert.Equal(t, []models.KnowledgeEntry{eA}, st.Entries)
	assert.False(t, st.Loading)
}

func TestStore_FetchOne(t *testing.T) {
	s := New(newFake(eA, eB), nil)

	e, err := s.FetchOne(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, eB, e)
	require.NotNil(t, s.State().SelectedEntry)
	assert.Empty(t, s.State().Entries)

	_, err = s.FetchOne(context.Background(), "missing")
	assert.True(t, client.IsNotFound(err))
	assert.Equal(t, client.MsgFetchEntry, s.State().Error)

	s.ClearSelected()
	assert.Nil(t, s.State().SelectedEntry)
}

func TestStore_CreateUpdateDelete(t *testing.T) {
	fc := newFake(eA)
	s := New(fc, nil)
	ctx := context.Background()
	_, err := s.FetchAll(ctx)
	require.NoError(t, err)

	created, err := s.Create(ctx, models.EntryInput{Title: "New", Status: models.StatusTraining, ProdTime: "5 min read"})
	require.NoError(t, err)
	st := s.State()
	require.Len(t, st.Entries, 2)
	assert.Equal(t, created, st.Entries[1])
	assert.False(t, st.CreateLoading)

	_, err = s.FetchOne(ctx, created.ID)
	require.NoError(t, err)

	title := "Renamed"
	updated, err := s.Update(ctx, created.ID, models.EntryPatch{Title: &title})
	require.NoError(t, err)
	st = s.State()
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Renamed", st.Entries[1].Title)
	assert.Equal(t, "Renamed", st.SelectedEntry.Title)

	require.NoError(t, s.Delete(ctx, created.ID))
	st = s.State()
	assert.Equal(t, []models.KnowledgeEntry{eA}, st.Entries)
	assert.Nil(t, st.SelectedEntry)
	assert.False(t, st.DeleteLoading)
}

func TestStore_DeleteFailureIsSurfaced(t *testing.T) {
	fc := newFake(eA)
	s := New(fc, nil)
	ctx := context.Background()
	_, _ = s.FetchAll(ctx)

	err := s.Delete(ctx, "nope")
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, client.MsgDeleteEntry, st.DeleteError)
	assert.Equal(t, []models.KnowledgeEntry{eA}, st.Entries)
	assert.Empty(t, st.Error)

	s.ClearErrors()
	assert.Empty(t, s.State().DeleteError)
}

func TestStore_NonTransportErrorMessage(t *testing.T) {
	fc := newFake()
	fc.fail("create", errors.New("connection reset"))
	s := New(fc, nil)

	_, err := s.Create(context.Background(), models.EntryInput{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, "connection reset", s.State().CreateError)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Failed to fetch entry", Message(&client.TransportError{Message: "Failed to fetch entry"}, "x"))
	assert.Equal(t, "boom", Message(errors.New("boom"), "x"))
	assert.Equal(t, "Failed to delete entry", Message(errors.New(""), "Failed to delete entry"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}

func TestStore_SameOpSameIDIsRejected(t *testing.T) {
	fc := newFake(eA, eB)
	fc.gate = make(chan struct{})
	fc.started = make(chan string, 4)
	s := New(fc, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- s.Delete(ctx, "a") }()
	<-fc.started

	before := s.State()
	assert.True(t, before.DeleteLoading)

	err := s.Delete(ctx, "a")
	require.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, before, s.State())

	close(fc.gate)
	require.NoError(t, <-done)
	assert.False(t, s.State().DeleteLoading)
}

func TestStore_SameOpDifferentIDsOverlap(t *testing.T) {
	fc := newFake(eA, eB, eC)
	fc.gate = make(chan struct{})
	fc.started = make(chan string, 4)
	s := New(fc, nil)
	ctx := context.Background()

	errs := make(chan error, 2)
	go func() { errs <- s.Delete(ctx, "a") }()
	go func() { errs <- s.Delete(ctx, "zz") }()
	<-fc.started
	<-fc.started

	fc.gate <- struct{}{}
	first := <-errs
	assert.True(t, s.State().DeleteLoading, "flag stays up while the second delete is pending")

	fc.gate <- struct{}{}
	second := <-errs

	st := s.State()
	assert.False(t, st.DeleteLoading)
	// exactly one of the two failed (unknown id)
	assert.True(t, (first == nil) != (second == nil))
	assert.Equal(t, client.MsgDeleteEntry, st.DeleteError)
}

func TestStore_DifferentClassesDoNotInterfere(t *testing.T) {
	fc := newFake(eA)
	fc.gate = make(chan struct{})
	fc.started = make(chan string, 4)
	s := New(fc, nil)
	ctx := context.Background()

	listDone := make(chan error, 1)
	go func() {
		_, err := s.FetchAll(ctx)
		listDone <- err
	}()
	<-fc.started

	createDone := make(chan error, 1)
	go func() {
		_, err := s.Create(ctx, models.EntryInput{Title: "x", Status: models.StatusCertified})
		createDone <- err
	}()
	<-fc.started

	st := s.State()
	assert.True(t, st.Loading)
	assert.True(t, st.CreateLoading)

	close(fc.gate)
	require.NoError(t, <-listDone)
	require.NoError(t, <-createDone)

	st = s.State()
	assert.False(t, st.Busy())
	assert.Empty(t, st.Errors())
}

func TestStore_ContextCancel(t *testing.T) {
	fc := newFake(eA)
	fc.gate = make(chan struct{})
	s := New(fc, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.FetchAll(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	st := s.State()
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.Error)
}

func TestStore_SubscribeInCommitOrder(t *testing.T) {
	s := New(newFake(eA), nil)

	var seen []bool
	unsub := s.Subscribe(func(st State) { seen = append(seen, st.Loading) })

	_, err := s.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, seen)

	unsub()
	_, _ = s.FetchAll(context.Background())
	assert.Len(t, seen, 2)
}

func TestStore_StateIsSnapshot(t *testing.T) {
	s := New(newFake(eA), nil)
	_, _ = s.FetchAll(context.Background())

	st := s.State()
	st.Entries[0].Title = "mutated"
	assert.Equal(t, "A", s.State().Entries[0].Title)
}

func TestStore_SubscriberMayReadStoreUnderConcurrentDispatch(t *testing.T) {
	s := New(newFake(eA), nil)

	var calls int
	var callsMu sync.Mutex
	unsub := s.Subscribe(func(st State) {
		_ = s.Stats()
		_ = s.State()
		callsMu.Lock()
		calls++
		callsMu.Unlock()
	})
	defer unsub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					_, _ = s.FetchOne(context.Background(), eA.ID)
					_, _ = s.Create(context.Background(), models.EntryInput{Title: "t", Category: "c"})
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not finish, subscriber and commit are blocking each other")
	}
	callsMu.Lock()
	defer callsMu.Unlock()
	assert.Positive(t, calls)
}
