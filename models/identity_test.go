package models

import "testing"

func TestDeriveIDAndSlug(t *testing.T) {
	tests := []struct {
		title string
		id    string
		slug  string
	}{
		{title: "Red Dragon's Lair!", id: "RedDragonsLair", slug: "red-dragons-lair"},
		{title: "  Neon   City  ", id: "NeonCity", slug: "-neon-city-"},
		{title: "Robot_Arm 2", id: "RobotArm2", slug: "robotarm-2"},
		{title: "Forêt Noire", id: "FortNoire", slug: "fort-noire"},
	}

	for _, tt := range tests {
		if got := DeriveID(tt.title); got != tt.id {
			t.Errorf("DeriveID(%q) = %q, want %q", tt.title, got, tt.id)
		}
		if got := DeriveSlug(tt.title); got != tt.slug {
			t.Errorf("DeriveSlug(%q) = %q, want %q", tt.title, got, tt.slug)
		}
	}
}

func TestAssignIdentityKeepsExplicitValues(t *testing.T) {
	p := &Project{ID: "custom", Title: "Red Dragon's Lair!"}
	AssignIdentity(p)
	if p.ID != "custom" {
		t.Fatalf("explicit id overwritten: %q", p.ID)
	}
	if p.Slug != "red-dragons-lair" {
		t.Fatalf("slug = %q", p.Slug)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "", want: French},
		{in: "en", want: English},
		{in: "FR", want: French},
		{in: "de", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLanguage(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if English.Other() != French || French.Other() != English {
		t.Fatal("Other() must swap partitions")
	}
}
