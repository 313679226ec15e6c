package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/kbadmin/internal/client/client"
	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
)

// ErrInFlight is returned when the same operation on the same entry is
// already outstanding.
var ErrInFlight = errors.New("operation already in progress")

type flightKey struct {
	op Op
	id string
}

type Store struct {
	client client.Client
	log    logging.Logger

	mu       sync.Mutex
	state    State
	inflight map[flightKey]struct{}
	subs     map[int]func(State)
	nextSub  int

	createSeq atomic.Uint64

	// Subscribers see commits in ticket order. committed is guarded by mu,
	// delivered by deliverMu. Nothing waits on deliverMu while holding mu.
	committed   uint64
	deliverMu   sync.Mutex
	deliverCond *sync.Cond
	delivered   uint64
}

func New(c client.Client, log logging.Logger) *Store {
	s := &Store{
		client:   c,
		log:      logging.OrNop(log).With("component", "store"),
		state:    State{Entries: []models.KnowledgeEntry{}},
		inflight: make(map[flightKey]struct{}),
		subs:     make(map[int]func(State)),
	}
	s.deliverCond = sync.NewCond(&s.deliverMu)
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Stats returns the counters for the current collection.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsOf(s.state.Entries)
}

// Entry looks up an entry of the local collection.
func (s *Store) Entry(id string) (models.KnowledgeEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.KnowledgeEntry{}, false
}

// Subscribe registers fn to receive a snapshot after every transition.
// fn runs on the dispatching goroutine. It may read the store but must not
// dispatch.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) ClearSelected() {
	s.mu.Lock()
	s.commitLocked(ActionClearSelected)
}

func (s *Store) ClearErrors() {
	s.mu.Lock()
	s.commitLocked(ActionClearErrors)
}

// FetchAll replaces the local collection with the backend's.
func (s *Store) FetchAll(ctx context.Context) ([]models.KnowledgeEntry, error) {
	if err := s.begin(ctx, OpFetchAll, ""); err != nil {
		return nil, err
	}
	entries, err := s.client.ListEntries(ctx)
	if err != nil {
		s.reject(ctx, OpFetchAll, "", err, client.MsgFetchEntries)
		return nil, err
	}
	s.fulfill(ctx, Action{Op: OpFetchAll, Entries: entries})
	return cloneEntries(entries), nil
}

// FetchOne loads one entry into SelectedEntry. The collection is unchanged.
func (s *Store) FetchOne(ctx context.Context, id string) (models.KnowledgeEntry, error) {
	if err := s.begin(ctx, OpFetchOne, id); err != nil {
		return models.KnowledgeEntry{}, err
	}
	e, err := s.client.GetEntry(ctx, id)
	if err != nil {
		s.reject(ctx, OpFetchOne, id, err, client.MsgFetchEntry)
		return models.KnowledgeEntry{}, err
	}
	s.fulfill(ctx, Action{Op: OpFetchOne, ID: id, Entry: e})
	return e, nil
}

// Create posts in and appends the confirmed record.
func (s *Store) Create(ctx context.Context, in models.EntryInput) (models.KnowledgeEntry, error) {
	// Creates carry no id yet, so each call gets its own key.
	key := "new-" + strconv.FormatUint(s.createSeq.Add(1), 10)
	if err := s.begin(ctx, OpCreate, key); err != nil {
		return models.KnowledgeEntry{}, err
	}
	e, err := s.client.CreateEntry(ctx, in)
	if err != nil {
		s.reject(ctx, OpCreate, key, err, client.MsgCreateEntry)
		return models.KnowledgeEntry{}, err
	}
	s.fulfillKey(ctx, key, Action{Op: OpCreate, Entry: e})
	return e, nil
}

// Update sends patch and replaces the entry with the merged record.
func (s *Store) Update(ctx context.Context, id string, patch models.EntryPatch) (models.KnowledgeEntry, error) {
	if err := s.begin(ctx, OpUpdate, id); err != nil {
		return models.KnowledgeEntry{}, err
	}
	e, err := s.client.UpdateEntry(ctx, id, patch)
	if err != nil {
		s.reject(ctx, OpUpdate, id, err, client.MsgUpdateEntry)
		return models.KnowledgeEntry{}, err
	}
	s.fulfill(ctx, Action{Op: OpUpdate, ID: id, Entry: e})
	return e, nil
}

// Delete removes the entry once the backend confirms.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.begin(ctx, OpDelete, id); err != nil {
		return err
	}
	if err := s.client.DeleteEntry(ctx, id); err != nil {
		s.reject(ctx, OpDelete, id, err, client.MsgDeleteEntry)
		return err
	}
	s.fulfill(ctx, Action{Op: OpDelete, ID: id})
	return nil
}

func (s *Store) begin(ctx context.Context, op Op, id string) error {
	s.mu.Lock()
	k := flightKey{op: op, id: id}
	if _, busy := s.inflight[k]; busy {
		s.mu.Unlock()
		s.log.Debug(ctx, "call rejected, already in flight", "op", op.String(), "id", id)
		return fmt.Errorf("%s %s: %w", op, id, ErrInFlight)
	}
	s.inflight[k] = struct{}{}
	s.log.Debug(ctx, "dispatch", "op", op.String(), "id", id)
	s.commitLocked(Action{Op: op, Phase: Pending, ID: id})
	return nil
}

func (s *Store) fulfill(ctx context.Context, a Action) {
	s.fulfillKey(ctx, a.ID, a)
}

func (s *Store) fulfillKey(ctx context.Context, key string, a Action) {
	s.mu.Lock()
	delete(s.inflight, flightKey{op: a.Op, id: key})
	a.Phase = Fulfilled
	a.Outstanding = s.outstandingLocked(a.Op)
	s.log.Debug(ctx, "fulfilled", "op", a.Op.String(), "id", a.ID)
	s.commitLocked(a)
}

func (s *Store) reject(ctx context.Context, op Op, key string, err error, fallback string) {
	msg := Message(err, fallback)
	attrs := []any{"op", op.String(), "error", msg}
	var te *client.TransportError
	if errors.As(err, &te) {
		attrs = append(attrs, "status", te.Status, "detail", te.Detail())
	}
	if op == OpDelete {
		attrs = append(attrs, "id", key)
	}
	s.log.Error(ctx, "operation failed", attrs...)

	s.mu.Lock()
	delete(s.inflight, flightKey{op: op, id: key})
	s.commitLocked(Action{
		Op:          op,
		Phase:       Rejected,
		Error:       msg,
		Outstanding: s.outstandingLocked(op),
	})
}

// outstandingLocked counts in-flight calls sharing op's class.
func (s *Store) outstandingLocked(op Op) int {
	n := 0
	for k := range s.inflight {
		if k.op.class() == op.class() {
			n++
		}
	}
	return n
}

// commitLocked applies a, releases s.mu and notifies subscribers.
func (s *Store) commitLocked(a Action) {
	s.state = Reduce(s.state, a)
	snap := s.state.Clone()
	subs := make([]func(State), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	ticket := s.committed
	s.committed++
	s.mu.Unlock()

	s.deliver(ticket, snap, subs)
}

func (s *Store) deliver(ticket uint64, snap State, subs []func(State)) {
	s.deliverMu.Lock()
	for s.delivered != ticket {
		s.deliverCond.Wait()
	}
	s.deliverMu.Unlock()

	defer func() {
		s.deliverMu.Lock()
		s.delivered++
		s.deliverCond.Broadcast()
		s.deliverMu.Unlock()
	}()
	for _, fn := range subs {
		fn(snap.Clone())
	}
}

// Message extracts the user-facing text of an operation error, falling back
// to fallback when err carries none.
func Message(err error, fallback string) string {
	var te *client.TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
