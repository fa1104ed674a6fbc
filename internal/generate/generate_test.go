package generate

import (
	"bytes"
	"context"
	"testing"
)

func TestPassthroughEchoesUserPhoto(t *testing.T) {
	g := NewPassthrough("")

	user := []byte("user-photo-bytes")
	outfit := []byte("outfit-photo-bytes")

	out, err := g.Generate(context.Background(), user, outfit)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(out, user) {
		t.Errorf("output = %q, want user photo", out)
	}
}

func TestPassthroughCancelledContext(t *testing.T) {
	g := NewPassthrough("key")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, []byte("a"), []byte("b")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
