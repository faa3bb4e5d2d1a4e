package models

import (
	"reflect"
	"testing"
)

func TestNormalizeMediaSynthesizesFromGallery(t *testing.T) {
	p := &Project{Gallery: []string{"/uploads/a.png", "/uploads/b.mp4"}}
	NormalizeMedia(p)

	want := []MediaItem{{Path: "/uploads/a.png"}, {Path: "/uploads/b.mp4"}}
	if !reflect.DeepEqual(p.Media, want) {
		t.Fatalf("media = %+v, want %+v", p.Media, want)
	}
}

func TestNormalizeMediaDoesNotRebuildGallery(t *testing.T) {
	p := &Project{Media: []MediaItem{{Path: "/uploads/a.png", Description: "front"}}}
	NormalizeMedia(p)

	if p.Gallery == nil || len(p.Gallery) != 0 {
		t.Fatalf("gallery = %#v, want empty list", p.Gallery)
	}
	if len(p.Media) != 1 || p.Media[0].Description != "front" {
		t.Fatalf("media changed: %+v", p.Media)
	}
}

func TestAddMediaFirstItemBecomesCover(t *testing.T) {
	p := &Project{}
	AddMedia(p, MediaItem{Path: "/uploads/a.png"})
	AddMedia(p, MediaItem{Path: "/uploads/b.png"})

	if p.CoverImage != "/uploads/a.png" || p.ThumbnailImage != "/uploads/a.png" {
		t.Fatalf("cover/thumbnail = %q/%q", p.CoverImage, p.ThumbnailImage)
	}
	if !reflect.DeepEqual(p.Gallery, []string{"/uploads/a.png", "/uploads/b.png"}) {
		t.Fatalf("gallery = %v", p.Gallery)
	}
	if len(p.Media) != 2 {
		t.Fatalf("media = %+v", p.Media)
	}
}

func TestAddMediaKeepsExistingCover(t *testing.T) {
	p := &Project{CoverImage: "/uploads/chosen.png"}
	AddMedia(p, MediaItem{Path: "/uploads/a.png"})
	if p.CoverImage != "/uploads/chosen.png" {
		t.Fatalf("cover overwritten: %q", p.CoverImage)
	}
}

func TestRemoveMediaPromotesNextCover(t *testing.T) {
	p := &Project{
		CoverImage:     "/uploads/a.png",
		ThumbnailImage: "/uploads/a.png",
		Gallery:        []string{"/uploads/a.png", "/uploads/b.png"},
		Media:          []MediaItem{{Path: "/uploads/a.png"}, {Path: "/uploads/b.png", Description: "side"}},
	}
	if !RemoveMedia(p, "/uploads/a.png") {
		t.Fatal("expected removal")
	}
	if p.CoverImage != "/uploads/b.png" || p.ThumbnailImage != "/uploads/b.png" {
		t.Fatalf("cover/thumbnail = %q/%q", p.CoverImage, p.ThumbnailImage)
	}
	if !reflect.DeepEqual(p.Gallery, []string{"/uploads/b.png"}) {
		t.Fatalf("gallery = %v", p.Gallery)
	}
}

func TestRemoveMediaLastItemClearsCover(t *testing.T) {
	p := &Project{
		CoverImage:     "/uploads/a.png",
		ThumbnailImage: "/uploads/a.png",
		Gallery:        []string{"/uploads/a.png"},
	}
	NormalizeMedia(p)
	RemoveMedia(p, "/uploads/a.png")
	if p.CoverImage != "" || p.ThumbnailImage != "" {
		t.Fatalf("cover/thumbnail = %q/%q", p.CoverImage, p.ThumbnailImage)
	}
}

func TestRemoveMediaNonCoverLeavesCover(t *testing.T) {
	p := &Project{
		CoverImage: "/uploads/a.png",
		Gallery:    []string{"/uploads/a.png", "/uploads/b.png"},
	}
	if !RemoveMedia(p, "/uploads/b.png") {
		t.Fatal("expected removal")
	}
	if p.CoverImage != "/uploads/a.png" {
		t.Fatalf("cover = %q", p.CoverImage)
	}
	if RemoveMedia(p, "/uploads/missing.png") {
		t.Fatal("removing unknown path must report false")
	}
}

func TestRepairCover(t *testing.T) {
	tests := []struct {
		name      string
		project   Project
		changed   bool
		cover     string
		thumbnail string
	}{
		{
			name:      "empty cover",
			project:   Project{Gallery: []string{"/a", "/b"}},
			changed:   true,
			cover:     "/a",
			thumbnail: "/a",
		},
		{
			name:      "dangling cover keeps thumbnail",
			project:   Project{CoverImage: "/gone", ThumbnailImage: "/b", Gallery: []string{"/a", "/b"}},
			changed:   true,
			cover:     "/a",
			thumbnail: "/b",
		},
		{
			name:      "valid cover",
			project:   Project{CoverImage: "/b", Media: []MediaItem{{Path: "/a"}, {Path: "/b"}}},
			changed:   false,
			cover:     "/b",
			thumbnail: "",
		},
		{
			name:    "no media",
			project: Project{CoverImage: "/gone"},
			changed: false,
			cover:   "/gone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.project
			if got := RepairCover(&p); got != tt.changed {
				t.Fatalf("changed = %v, want %v", got, tt.changed)
			}
			if p.CoverImage != tt.cover || p.ThumbnailImage != tt.thumbnail {
				t.Fatalf("cover/thumbnail = %q/%q, want %q/%q", p.CoverImage, p.ThumbnailImage, tt.cover, tt.thumbnail)
			}
		})
	}
}

func TestRepairCoverIsIdempotent(t *testing.T) {
	once := &Project{CoverImage: "/gone", Gallery: []string{"/a", "/b"}}
	RepairCover(once)
	twice := once.Clone()
	if RepairCover(twice) {
		t.Fatal("second repair must be a no-op")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("repair not idempotent: %+v vs %+v", once, twice)
	}
}

func TestMirrorSharedFieldsLeavesTextAlone(t *testing.T) {
	en := &Project{Title: "Dragon", Description: "english", CoverImage: "/old"}
	fr := &Project{
		Title:          "Dragon FR",
		Description:    "français",
		CoverImage:     "/new",
		ThumbnailImage: "/thumb",
		Gallery:        []string{"/new"},
		Media:          []MediaItem{{Path: "/new"}},
		Featured:       true,
	}
	MirrorSharedFields(en, fr)

	if en.Title != "Dragon" || en.Description != "english" {
		t.Fatalf("text fields mirrored: %+v", en)
	}
	if en.CoverImage != "/new" || en.ThumbnailImage != "/thumb" || !en.Featured {
		t.Fatalf("shared fields not mirrored: %+v", en)
	}
	fr.Gallery[0] = "/mutated"
	if en.Gallery[0] != "/new" {
		t.Fatal("mirrored gallery aliases source slice")
	}
}
