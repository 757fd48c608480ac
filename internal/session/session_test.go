package session

import (
	"context"
	"errors"
	"testing"
)

type countingStore struct {
	token string
	reads int
	err   error
}

func (c *countingStore) Token(ctx context.Context) (string, error) {
	c.reads++
	return c.token, c.err
}

func (c *countingStore) Remove(ctx context.Context) error {
	c.token = ""
	return nil
}

func TestTokenLoadedOnce(t *testing.T) {
	store := &countingStore{token: "abc"}
	s := New(store)

	for i := 0; i < 3; i++ {
		tok, err := s.Token(context.Background())
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if tok != "abc" {
			t.Errorf("token = %q, want abc", tok)
		}
	}
	if store.reads != 1 {
		t.Errorf("store reads = %d, want 1", store.reads)
	}
}

func TestTokenStoreError(t *testing.T) {
	s := New(&countingStore{err: errors.New("disk gone")})
	if _, err := s.Token(context.Background()); err == nil {
		t.Fatal("expected error from store")
	}
}

func TestInvalidateRemovesToken(t *testing.T) {
	store := NewMemoryStore("abc")
	s := New(store)

	if _, err := s.Token(context.Background()); err != nil {
		t.Fatalf("token: %v", err)
	}
	if err := s.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	tok, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != "" {
		t.Errorf("token = %q, want empty after invalidate", tok)
	}
	if store.Removed() != 1 {
		t.Errorf("removed = %d, want 1", store.Removed())
	}
}

func TestSignOut(t *testing.T) {
	store := NewMemoryStore("abc")
	s := New(store)

	if err := s.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	tok, _ := store.Token(context.Background())
	if tok != "" {
		t.Errorf("stored token = %q, want empty", tok)
	}
}

func TestNilStore(t *testing.T) {
	s := New(nil)
	tok, err := s.Token(context.Background())
	if err != nil || tok != "" {
		t.Errorf("Token() = %q, %v; want empty, nil", tok, err)
	}
	if err := s.Invalidate(context.Background()); err != nil {
		t.Errorf("invalidate: %v", err)
	}
}
