package helpers

import "testing"

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !CompareHashAndPassword(h1, "secret123") {
		t.Fatal("hash does not verify")
	}
	if CompareHashAndPassword(h1, "wrongpass") {
		t.Fatal("wrong password verified")
	}

	// Random salt per call.
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same plaintext are identical")
	}
}
