package apikeys

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "apikeys-test-*")
	if err != nil {
		os.Exit(1)
	}
	if err := Open(filepath.Join(dir, "api_keys.db")); err != nil {
		os.RemoveAll(dir)
		os.Exit(1)
	}
	code := m.Run()
	Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// Runs first: the store must report empty before anything is created.
func TestEmptyOnFreshStore(t *testing.T) {
	if !Empty() {
		t.Error("fresh store should be empty")
	}
	keys, err := List()
	if err != nil {
		t.Fatalf("List on fresh store failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("fresh store listed %d keys", len(keys))
	}
}

func TestCreateAndList(t *testing.T) {
	token, rec, err := Create("ci-bot")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(token) != 43 {
		t.Errorf("token length = %d, want 43", len(token))
	}
	if rec.Name != "ci-bot" {
		t.Errorf("record name = %q, want ci-bot", rec.Name)
	}
	if _, err := time.Parse(time.RFC3339, rec.CreatedAt); err != nil {
		t.Errorf("created_at %q is not RFC3339: %v", rec.CreatedAt, err)
	}

	if Empty() {
		t.Error("store should not be empty after a create")
	}
	if !Exists(token) {
		t.Error("created key should exist")
	}

	keys, err := List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, k := range keys {
		if k.Name == "ci-bot" {
			found = true
		}
		// Listings must never leak key values
		encoded, _ := json.Marshal(k)
		if strings.Contains(string(encoded), token) {
			t.Error("listing exposes the key value")
		}
	}
	if !found {
		t.Error("created key name missing from listing")
	}
}

func TestCreateDefaultName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, rec, err := Create(name)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", name, err)
		}
		if rec.Name != "consumer" {
			t.Errorf("Create(%q) name = %q, want consumer", name, rec.Name)
		}
	}
}

func TestExistsUnknown(t *testing.T) {
	if Exists("") {
		t.Error("empty key should not exist")
	}
	if Exists("definitely-not-a-key") {
		t.Error("unknown key should not exist")
	}
}

func TestConcurrentCreate(t *testing.T) {
	before, err := List()
	if err != nil {
		t.Fatal(err)
	}

	const n = 25
	tokens := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, _, err := Create("worker")
			if err != nil {
				t.Errorf("concurrent Create failed: %v", err)
				return
			}
			tokens <- token
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]bool)
	for token := range tokens {
		if seen[token] {
			t.Errorf("duplicate token generated: %s", token)
		}
		seen[token] = true
		if !Exists(token) {
			t.Errorf("token created concurrently was lost")
		}
	}

	after, err := List()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before)+n {
		t.Errorf("listing has %d keys, want %d (no lost updates)", len(after), len(before)+n)
	}
}
