package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeCatalogPreservesKeyOrder(t *testing.T) {
	doc := []byte(`{
  "en": {
    "Zeta": {"id": "Zeta", "slug": "shared", "title": "Zeta"},
    "Alpha": {"id": "Alpha", "slug": "shared", "title": "Alpha"},
    "Mid": {"slug": "mid", "title": "Mid"}
  },
  "fr": null
}`)

	catalog, err := DecodeCatalog(doc)
	if err != nil {
		t.Fatalf("DecodeCatalog: %v", err)
	}
	if got := catalog.EN.IDs(); !reflect.DeepEqual(got, []string{"Zeta", "Alpha", "Mid"}) {
		t.Fatalf("ids = %v", got)
	}
	if catalog.FR.Len() != 0 {
		t.Fatalf("fr partition should be empty")
	}
	if p := catalog.EN.FindBySlug("shared"); p == nil || p.ID != "Zeta" {
		t.Fatalf("FindBySlug returned %+v, want first inserted", p)
	}
	if p := catalog.EN.Get("Mid"); p == nil || p.ID != "Mid" {
		t.Fatalf("id not filled from key: %+v", p)
	}

	encoded, err := EncodeCatalog(catalog)
	if err != nil {
		t.Fatalf("EncodeCatalog: %v", err)
	}
	again, err := DecodeCatalog(encoded)
	if err != nil {
		t.Fatalf("DecodeCatalog(encoded): %v", err)
	}
	if !reflect.DeepEqual(again.EN.IDs(), catalog.EN.IDs()) {
		t.Fatalf("order lost on round trip: %v", again.EN.IDs())
	}
}

func TestDecodeCatalogRejectsInvalidJSON(t *testing.T) {
	for _, doc := range []string{`{"en": {`, `not json`, `{"en": []}`} {
		if _, err := DecodeCatalog([]byte(doc)); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("DecodeCatalog(%q) error = %v, want ErrInvalidDocument", doc, err)
		}
	}
}

func TestPartitionSetKeepsPosition(t *testing.T) {
	var p Partition
	p.Set("a", &Project{ID: "a", Title: "first"})
	p.Set("b", &Project{ID: "b"})
	p.Set("a", &Project{ID: "a", Title: "replaced"})

	if got := p.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("ids = %v", got)
	}
	if p.Get("a").Title != "replaced" {
		t.Fatal("Set did not replace record")
	}
	if !p.Delete("a") || p.Delete("a") {
		t.Fatal("Delete must report presence exactly once")
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("ids after delete = %v", got)
	}
}

func TestEmptyCatalogEncodesBothPartitions(t *testing.T) {
	data, err := EncodeCatalog(NewCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n  \"en\": {},\n  \"fr\": {}\n}" {
		t.Fatalf("unexpected encoding: %s", data)
	}
}
