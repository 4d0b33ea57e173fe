package domain

import (
	"errors"
	"testing"
)

func TestArtifactKeyObjectName(t *testing.T) {
	t.Parallel()

	video, err := NewArtifactKey("u1", "t1", ArtifactVideo)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := video.ObjectName(); got != "u1/t1.mp4" {
		t.Errorf("Expected u1/t1.mp4, got %s", got)
	}

	thumb, err := NewArtifactKey("u1", "t1", ArtifactThumbnail)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := thumb.ObjectName(); got != "u1/t1.jpg" {
		t.Errorf("Expected u1/t1.jpg, got %s", got)
	}

	if thumb.Kind.ContentType() != "image/jpeg" || video.Kind.ContentType() != "video/mp4" {
		t.Error("Unexpected content types for artifact kinds")
	}
}

func TestNewArtifactKeyValidation(t *testing.T) {
	t.Parallel()

	cases := []ArtifactKey{
		{Owner: "", TaskID: "t1", Kind: ArtifactVideo},
		{Owner: "u1", TaskID: "", Kind: ArtifactVideo},
		{Owner: "u1", TaskID: "t/1", Kind: ArtifactVideo},
		{Owner: "u1", TaskID: "t1", Kind: ArtifactKind("audio")},
	}

	for _, c := range cases {
		if _, err := NewArtifactKey(c.Owner, c.TaskID, c.Kind); !errors.Is(err, ErrValidation) {
			t.Errorf("Expected validation error for %+v, got %v", c, err)
		}
	}
}

func TestTaskIDFromObjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"u1/t1.mp4", "t1", true},
		{"u1/t1.jpg", "", false},
		{"u2/t1.mp4", "", false},
		{"u1/nested/t1.mp4", "", false},
		{"u1/.mp4", "", false},
	}

	for _, tc := range tests {
		got, ok := TaskIDFromObjectName("u1", tc.name)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("TaskIDFromObjectName(u1, %q) = (%q, %v), want (%q, %v)",
				tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}
