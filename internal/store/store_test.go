package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string
	Name string
}

func (i item) GetID() string { return i.ID }

type fakeBackend struct {
	rows    map[string][]item
	seq     int
	err     error
	deleted []string
}

func (b *fakeBackend) List(_ context.Context, scope string) ([]item, error) {
	if b.err != nil {
		return nil, b.err
	}
	return append([]item(nil), b.rows[scope]...), nil
}

func (b *fakeBackend) Create(_ context.Context, name string) (item, error) {
	if b.err != nil {
		return item{}, b.err
	}
	b.seq++
	return item{ID: fmt.Sprintf("new-%d", b.seq), Name: name}, nil
}

func (b *fakeBackend) Update(_ context.Context, id string, name string) (item, error) {
	if b.err != nil {
		return item{}, b.err
	}
	return item{ID: id, Name: name}, nil
}

func (b *fakeBackend) Delete(_ context.Context, id string) error {
	if b.err != nil {
		return b.err
	}
	b.deleted = append(b.deleted, id)
	return nil
}

func newTestStore() (*Store[item, string, string], *fakeBackend) {
	b := &fakeBackend{rows: map[string][]item{
		"camp-1": {{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}},
	}}
	return New[item, string, string](b), b
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestStore_FetchAllReplacesList(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, s.FetchAll(ctx, "camp-1"))
	assert.Equal(t, []string{"a", "b"}, ids(s.Items()))
	assert.Equal(t, "camp-1", s.Scope())

	require.NoError(t, s.FetchAll(ctx, "camp-2"))
	assert.Empty(t, s.Items())
	assert.Equal(t, Status{}, s.Status(OpFetch))
}

func TestStore_CreatePrepends(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.FetchAll(ctx, "camp-1"))

	created, err := s.Create(ctx, "Gamma")
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, []string{"new-1", "a", "b"}, ids(s.Items()))
}

func TestStore_UpdateReplacesInPlaceAndCurrent(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.FetchAll(ctx, "camp-1"))
	s.SetCurrent(&item{ID: "b", Name: "Beta"})

	_, err := s.Update(ctx, "b", "Beta prime")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ids(s.Items()))
	got, ok := s.Find("b")
	require.True(t, ok)
	assert.Equal(t, "Beta prime", got.Name)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Beta prime", cur.Name)
}

func TestStore_DeleteClearsMatchingCurrent(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		deleteID    string
		wantCurrent bool
	}{
		{"deleted current", "a", "a", false},
		{"other current", "b", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, b := newTestStore()
			ctx := context.Background()
			require.NoError(t, s.FetchAll(ctx, "camp-1"))
			s.SetCurrent(&item{ID: tt.current})

			require.NoError(t, s.Delete(ctx, tt.deleteID))
			assert.NotContains(t, ids(s.Items()), tt.deleteID)
			assert.Equal(t, []string{tt.deleteID}, b.deleted)
			_, ok := s.Current()
			assert.Equal(t, tt.wantCurrent, ok)
		})
	}
}

func TestStore_FailureLeavesListAndSetsOpSlot(t *testing.T) {
	s, b := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.FetchAll(ctx, "camp-1"))
	before := s.Items()

	b.err = errors.New("permission denied for table campaigns")
	_, err := s.Create(ctx, "Gamma")
	require.Error(t, err)
	require.Error(t, s.Delete(ctx, "a"))

	assert.Equal(t, before, s.Items())
	assert.Equal(t, Status{Err: "permission denied for table campaigns"}, s.Status(OpCreate))
	assert.Equal(t, Status{Err: "permission denied for table campaigns"}, s.Status(OpDelete))
	assert.Equal(t, Status{}, s.Status(OpFetch))

	b.err = nil
	_, err = s.Create(ctx, "Gamma")
	require.NoError(t, err)
	assert.Equal(t, Status{}, s.Status(OpCreate))
}

func TestStore_ListenersSeeLoadingThenResult(t *testing.T) {
	s, _ := newTestStore()
	var seen []Status
	cancel := s.Subscribe(func() { seen = append(seen, s.Status(OpFetch)) })

	require.NoError(t, s.FetchAll(context.Background(), "camp-1"))
	assert.Equal(t, []Status{{Loading: true}, {}}, seen)

	cancel()
	s.SetCurrent(nil)
	assert.Len(t, seen, 2)
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.FetchAll(context.Background(), "camp-1"))

	items := s.Items()
	items[0].Name = "mutated"
	got, _ := s.Find("a")
	assert.Equal(t, "Alpha", got.Name)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	b := &syncBackend{}
	s := New[item, string, string](b)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Create(context.Background(), fmt.Sprintf("n%d", i))
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Items(), 20)
}

type syncBackend struct {
	fakeBackend
	mu sync.Mutex
}

func (b *syncBackend) Create(ctx context.Context, name string) (item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fakeBackend.Create(ctx, name)
}
