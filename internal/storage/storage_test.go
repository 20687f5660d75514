package storage

import (
	"strings"
	"testing"
)

func TestConstraintsAllows(t *testing.T) {
	t.Parallel()

	c := Constraints{AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"}}
	if !c.Allows("image/png") {
		t.Fatal("image/png should be allowed")
	}
	if c.Allows("image/gif") {
		t.Fatal("image/gif should be rejected")
	}
	if c.Allows("application/pdf") {
		t.Fatal("application/pdf should be rejected")
	}

	open := Constraints{}
	if !open.Allows("anything/at-all") {
		t.Fatal("empty allowed set should accept anything")
	}
}

func TestNewKey(t *testing.T) {
	t.Parallel()

	key := NewKey("team", "image/jpeg")
	if !strings.HasPrefix(key, "team/") {
		t.Fatalf("key %q should be inside the team folder", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key %q should carry a .jpg extension", key)
	}

	other := NewKey("team", "image/jpeg")
	if key == other {
		t.Fatal("consecutive keys must not collide")
	}

	if got := NewKey("blog", "application/octet-stream"); strings.Contains(got, ".") {
		t.Fatalf("unknown content type should produce no extension, got %q", got)
	}
}
