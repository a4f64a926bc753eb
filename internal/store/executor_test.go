package store_test

import (
	"context"
	"errors"
	"testing"

	"inventory-assistant/internal/model"
	"inventory-assistant/internal/store"
	pkgLog "inventory-assistant/pkg/log"
	"inventory-assistant/pkg/mongodb"
)

type fakeDataAPI struct {
	docs       []mongodb.Document
	err        error
	lastFilter map[string]interface{}
}

func (f *fakeDataAPI) Find(ctx context.Context, collection string, filter map[string]interface{}) ([]mongodb.Document, error) {
	f.lastFilter = filter
	return f.docs, f.err
}

func (f *fakeDataAPI) Aggregate(ctx context.Context, collection string, pipeline []map[string]interface{}) ([]mongodb.Document, error) {
	return f.docs, f.err
}

func TestFindForcesOwner(t *testing.T) {
	api := &fakeDataAPI{docs: []mongodb.Document{{"name": "Rice"}}}
	e := store.NewExecutor(api, pkgLog.NewNopLogger())

	// Filter arrives claiming a different owner; the executor must stamp
	// the real one over it.
	got := e.Find(context.Background(), "products", model.Filter{model.OwnerField: "evil"}, "owner-1")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if api.lastFilter[model.OwnerField] != "owner-1" {
		t.Errorf("owner = %v, want owner-1", api.lastFilter[model.OwnerField])
	}
}

func TestFindNilFilter(t *testing.T) {
	api := &fakeDataAPI{}
	e := store.NewExecutor(api, pkgLog.NewNopLogger())

	got := e.Find(context.Background(), "products", nil, "owner-1")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if api.lastFilter[model.OwnerField] != "owner-1" {
		t.Error("owner not forced onto nil filter")
	}
}

func TestFindFailSoft(t *testing.T) {
	api := &fakeDataAPI{err: errors.New("data api unreachable")}
	e := store.NewExecutor(api, pkgLog.NewNopLogger())

	got := e.Find(context.Background(), "products", model.Filter{}, "owner-1")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice on failure, got %v", got)
	}
}

func TestAggregateFailSoft(t *testing.T) {
	api := &fakeDataAPI{err: errors.New("pipeline rejected")}
	e := store.NewExecutor(api, pkgLog.NewNopLogger())

	got := e.Aggregate(context.Background(), "bills", []map[string]interface{}{})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice on failure, got %v", got)
	}
}

func TestFindStringifiesObjectID(t *testing.T) {
	api := &fakeDataAPI{docs: []mongodb.Document{
		{"_id": map[string]interface{}{"$oid": "64f0c2"}, "name": "Rice"},
		{"_id": "plain-id", "name": "Oil"},
	}}
	e := store.NewExecutor(api, pkgLog.NewNopLogger())

	got := e.Find(context.Background(), "products", model.Filter{}, "owner-1")
	if got[0]["_id"] != "64f0c2" {
		t.Errorf("_id = %v, want 64f0c2", got[0]["_id"])
	}
	if got[1]["_id"] != "plain-id" {
		t.Errorf("_id = %v, want plain-id", got[1]["_id"])
	}
}
