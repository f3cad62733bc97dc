package content

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentStore struct {
	mu      sync.Mutex
	items   []Item
	listErr error
	calls   int
}

func (f *fakeContentStore) ListContent(ctx context.Context) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeContentStore) CreateContent(ctx context.Context, req CreateRequest) (*Item, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeContentStore) UpdateContent(ctx context.Context, id string, req CreateRequest) (*Item, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeContentStore) DeleteContent(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f *fakeContentStore) set(items []Item, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.listErr = err
}

func TestCacheRefreshStoresItems(t *testing.T) {
	store := &fakeContentStore{items: []Item{
		{ID: "c1", Title: "Cataract care", Platform: PlatformYouTube, Published: true},
		{ID: "c2", Title: "Draft video", Platform: PlatformYouTube, Published: false},
	}}
	cache := NewCache(store, time.Minute, nil)

	cache.Refresh(context.Background())

	assert.Len(t, cache.Items(), 2)
	pub := cache.Published()
	require.Len(t, pub, 1)
	assert.Equal(t, "c1", pub[0].ID)

	st := cache.Status()
	assert.False(t, st.LastSuccess.IsZero())
	assert.Empty(t, st.LastError)
}

func TestCacheFailedRefreshKeepsPreviousData(t *testing.T) {
	store := &fakeContentStore{items: []Item{{ID: "c1", Title: "Cataract care", Published: true}}}
	cache := NewCache(store, time.Minute, nil)

	cache.Refresh(context.Background())
	require.Len(t, cache.Items(), 1)

	store.set(nil, errors.New("upstream 503"))
	cache.Refresh(context.Background())

	assert.Len(t, cache.Items(), 1, "stale data beats no data")
	st := cache.Status()
	assert.Equal(t, "upstream 503", st.LastError)
	assert.False(t, st.LastErrorAt.IsZero())
}

func TestCacheRecoversAfterFailure(t *testing.T) {
	store := &fakeContentStore{listErr: errors.New("upstream 503")}
	cache := NewCache(store, time.Minute, nil)

	cache.Refresh(context.Background())
	assert.NotEmpty(t, cache.Status().LastError)

	store.set([]Item{{ID: "c1", Published: true}}, nil)
	cache.Refresh(context.Background())

	assert.Len(t, cache.Items(), 1)
	assert.Empty(t, cache.Status().LastError, "a successful refresh clears the error")
}

func TestCacheRunRefreshesOnTick(t *testing.T) {
	store := &fakeContentStore{}
	cache := NewCache(store, 10*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		cache.Run(ctx)
		close(done)
	}()
	<-done

	store.mu.Lock()
	calls := store.calls
	store.mu.Unlock()
	assert.GreaterOrEqual(t, calls, 2, "immediate refresh plus at least one tick")
}
