package store_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/harper/journl/internal/mirror"
	"github.com/harper/journl/internal/models"
	"github.com/harper/journl/internal/store"
	"github.com/m-mizutani/gt"
)

const key = "journl-media"

func newStore(t *testing.T) (*store.Store, *mirror.JSONMirror, *mirror.MemorySlot) {
	t.Helper()
	m, slot := mirror.NewMemory(key)
	return store.New(context.Background(), m), m, slot
}

func link(id, url string) *models.Link {
	return &models.Link{ID: id, Title: "Preview for " + url, URL: url}
}

func TestAppendIsDurable(t *testing.T) {
	ctx := context.Background()
	s, m, _ := newStore(t)

	img := models.NewImage("a.png", "image/png", []byte{1, 2})
	gt.NoError(t, s.Append(ctx, img)).Required()

	reloaded := m.Load(ctx)
	gt.Array(t, reloaded).Length(1)
	gt.Value(t, reloaded[len(reloaded)-1]).Equal(models.Attachment(img))

	// a fresh store over the same mirror sees the record
	gt.Value(t, store.New(ctx, m).Len()).Equal(1)
}

func TestRemoveMiddlePreservesOrder(t *testing.T) {
	ctx := context.Background()
	s, m, _ := newStore(t)

	a, b, c := link("id-a", "https://a.example"), link("id-b", "https://b.example"), link("id-c", "https://c.example")
	gt.NoError(t, s.AppendAll(ctx, []models.Attachment{a, b, c})).Required()

	gt.NoError(t, s.Remove(ctx, "id-b")).Required()

	persisted := m.Load(ctx)
	gt.Array(t, persisted).Length(2)
	gt.Value(t, persisted[0]).Equal(models.Attachment(a))
	gt.Value(t, persisted[1]).Equal(models.Attachment(c))
	gt.Value(t, s.List()).Equal(persisted)
}

func TestRemoveUnknownID(t *testing.T) {
	ctx := context.Background()
	s, _, slot := newStore(t)
	gt.NoError(t, s.Append(ctx, link("id-a", "https://a.example"))).Required()

	before, err := slot.Get(ctx, key)
	gt.NoError(t, err).Required()

	gt.Error(t, s.Remove(ctx, "id-zzz")).Is(store.ErrNotFound)

	after, err := slot.Get(ctx, key)
	gt.NoError(t, err).Required()
	gt.Value(t, string(after)).Equal(string(before))
}

func TestAppendDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	gt.NoError(t, s.Append(ctx, link("same", "https://a.example"))).Required()
	gt.Error(t, s.Append(ctx, link("same", "https://b.example"))).Is(store.ErrDuplicateID)
	gt.Value(t, s.Len()).Equal(1)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, _, slot := newStore(t)
	gt.NoError(t, s.Append(ctx, link("id-a", "https://a.example"))).Required()

	slot.PutErr = errors.New("quota exceeded")

	gt.Error(t, s.Append(ctx, link("id-b", "https://b.example"))).Is(slot.PutErr)
	gt.Value(t, s.Len()).Equal(1)

	gt.Error(t, s.Remove(ctx, "id-a")).Is(slot.PutErr)
	gt.Value(t, s.Len()).Equal(1)
}

func TestNewLoadsExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	m, slot := mirror.NewMemory(key)
	gt.NoError(t, slot.Put(ctx, key, []byte(`[{"id":1718000000000.5,"type":"link","url":"https://old.example","title":"old"}]`))).Required()

	s := store.New(ctx, m)
	gt.Value(t, s.Len()).Equal(1)
	gt.NoError(t, s.Remove(ctx, "1718000000000.5")).Required()
	gt.Array(t, m.Load(ctx)).Length(0)
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	gt.NoError(t, s.Append(ctx, link("id-a", "https://a.example"))).Required()

	list := s.List()
	list[0] = nil
	got, err := s.Get("id-a")
	gt.NoError(t, err).Required()
	gt.Value(t, got.AttachmentID()).Equal("id-a")
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	gt.NoError(t, s.AppendAll(ctx, []models.Attachment{
		link("0190aaaa-0000-7000-8000-111111111111", "https://a.example"),
		link("0190aaaa-0000-7000-8000-222222222222", "https://b.example"),
	})).Required()

	got, err := s.Find("222222222222")
	gt.NoError(t, err).Required()
	gt.Value(t, got.Label()).Equal("Preview for https://b.example")

	_, err = s.Find("0190aaaa")
	gt.Error(t, err).Is(store.ErrAmbiguousPrefix)

	_, err = s.Find("abc")
	gt.Error(t, err).Is(store.ErrPrefixTooShort)

	_, err = s.Find("ffffffff")
	gt.Error(t, err).Is(store.ErrNotFound)

	got, err = s.Find("0190aaaa-0000-7000-8000-111111111111")
	gt.NoError(t, err).Required()
	gt.Value(t, got.Label()).Equal("Preview for https://a.example")
}

func TestConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s, m, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, models.NewLink("https://example.com", "x", ""))
		}()
	}
	wg.Wait()

	gt.Value(t, s.Len()).Equal(20)
	gt.Array(t, m.Load(ctx)).Length(20)
}

func TestStoresSharingAKeyKeepEachOthersWrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cli := store.New(ctx, mirror.NewFile(dir, key))
	server := store.New(ctx, mirror.NewFile(dir, key))

	gt.NoError(t, cli.Append(ctx, link("id-cli", "https://cli.example"))).Required()
	gt.NoError(t, server.Append(ctx, link("id-server", "https://server.example"))).Required()

	persisted := mirror.NewFile(dir, key).Load(ctx)
	gt.Array(t, persisted).Length(2)
	gt.Value(t, persisted[0].AttachmentID()).Equal("id-cli")
	gt.Value(t, persisted[1].AttachmentID()).Equal("id-server")

	// removal by one store must not resurrect or drop the other's records
	gt.NoError(t, cli.Remove(ctx, "id-server")).Required()
	persisted = mirror.NewFile(dir, key).Load(ctx)
	gt.Array(t, persisted).Length(1)
	gt.Value(t, persisted[0].AttachmentID()).Equal("id-cli")

	// an id added elsewhere is a duplicate here too
	gt.Error(t, server.Append(ctx, link("id-cli", "https://again.example"))).Is(store.ErrDuplicateID)
	gt.Value(t, server.Len()).Equal(1)
}

func TestReloadPicksUpOtherWriters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	reader := store.New(ctx, mirror.NewFile(dir, key))
	writer := store.New(ctx, mirror.NewFile(dir, key))
	gt.NoError(t, writer.Append(ctx, link("id-a", "https://a.example"))).Required()

	gt.Value(t, reader.Len()).Equal(0)
	reader.Reload(ctx)
	gt.Value(t, reader.Len()).Equal(1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, m, slot := newStore(t)
	gt.NoError(t, s.AppendAll(ctx, []models.Attachment{
		link("id-a", "https://a.example"),
		link("id-b", "https://b.example"),
	})).Required()

	gt.NoError(t, s.Clear(ctx)).Required()
	gt.Value(t, s.Len()).Equal(0)
	gt.Array(t, m.Load(ctx)).Length(0)

	_, err := slot.Get(ctx, key)
	gt.Error(t, err).Is(mirror.ErrSlotEmpty)
}

func TestUnreadableRecordsAreDiscardedOnNextWrite(t *testing.T) {
	ctx := context.Background()
	m, slot := mirror.NewMemory(key)
	raw := `[{"id":"keep","type":"link","url":"https://a.example"},{"id":"v","type":"video","url":"x"},null]`
	gt.NoError(t, slot.Put(ctx, key, []byte(raw))).Required()

	s := store.New(ctx, m)
	gt.Value(t, s.Len()).Equal(1)
	gt.NoError(t, s.Append(ctx, link("id-b", "https://b.example"))).Required()

	stored, err := slot.Get(ctx, key)
	gt.NoError(t, err).Required()
	gt.Bool(t, strings.Contains(string(stored), "video")).False()
	gt.Array(t, m.Load(ctx)).Length(2)
}
