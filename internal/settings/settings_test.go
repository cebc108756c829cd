package settings

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/lectern/internal/present/domain"
)

type fakeSettingsStore struct {
	blobs map[string][]byte
	err   error
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{blobs: make(map[string][]byte)}
}

func (f *fakeSettingsStore) GetSetting(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	payload, ok := f.blobs[ownerID+"/"+key]
	return payload, ok, nil
}

func (f *fakeSettingsStore) PutSetting(ctx context.Context, ownerID, key string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.blobs[ownerID+"/"+key] = payload
	return nil
}

func TestLoadMissingBlobReturnsDefaults(t *testing.T) {
	svc := NewService(newFakeSettingsStore())

	got, err := svc.Load(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Load = %+v, want defaults %+v", got, Defaults())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewService(newFakeSettingsStore())
	ctx := context.Background()

	saved := Defaults()
	saved.Background = "#1a1a2e"
	saved.TextSize = 64
	saved.Filmstrip = false

	if err := svc.Save(ctx, "alice", saved); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := svc.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, saved) {
		t.Errorf("Load = %+v, want %+v", got, saved)
	}
}

func TestLoadPartialBlobMergesOverDefaults(t *testing.T) {
	store := newFakeSettingsStore()
	svc := NewService(store)
	ctx := context.Background()

	// A blob persisted before newer fields existed only carries the old
	// keys; missing keys must keep their defaults.
	store.blobs["alice/display_settings"] = []byte(`{"background":"#222222","textSize":30}`)

	got, err := svc.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Defaults()
	want.Background = "#222222"
	want.TextSize = 30
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadCorruptBlobFallsBackToDefaults(t *testing.T) {
	store := newFakeSettingsStore()
	svc := NewService(store)

	store.blobs["alice/display_settings"] = []byte(`{not json`)

	got, err := svc.Load(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Load = %+v, want defaults after corrupt blob", got)
	}
}

func TestLoadStoreErrorReturnsDefaultsAndError(t *testing.T) {
	store := newFakeSettingsStore()
	store.err = errors.New("disk gone")
	svc := NewService(store)

	got, err := svc.Load(context.Background(), "alice")
	if err == nil {
		t.Fatal("Load with failing store should return an error")
	}
	if !reflect.DeepEqual(got, Defaults()) {
		t.Errorf("Load = %+v, want defaults on store error", got)
	}
}

func TestSaveOverwritesPreviousBlob(t *testing.T) {
	svc := NewService(newFakeSettingsStore())
	ctx := context.Background()

	first := Defaults()
	first.TextAlign = domain.AlignLeft
	if err := svc.Save(ctx, "alice", first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	second := Defaults()
	second.TextAlign = domain.AlignRight
	if err := svc.Save(ctx, "alice", second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := svc.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TextAlign != domain.AlignRight {
		t.Errorf("TextAlign = %q, want %q", got.TextAlign, domain.AlignRight)
	}
}
