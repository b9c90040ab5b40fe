package deck

import "testing"

func TestNormalize(t *testing.T) {
	expected := "a\nb\nc"
	normalized := Normalize([]string{" a", "b ", "c"})

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestHash(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		// Hash for "a\nb\nc"
		expectedHash := "ea7fb08b7a2dc4619ffb7c7bb38d95a2047935fa165d71b12efd3852a2e6d0cc"
		hash := Hash([]string{"a", "b", "c"})

		if hash != expectedHash {
			t.Errorf("Expected hash '%s', but got '%s'", expectedHash, hash)
		}
	})

	t.Run("order matters", func(t *testing.T) {
		if Hash([]string{"a", "b"}) == Hash([]string{"b", "a"}) {
			t.Error("Expected different layouts to hash differently")
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		if Hash(DefaultIcons) != Hash(append([]string(nil), DefaultIcons...)) {
			t.Error("Expected hashes for identical decks to be the same")
		}
	})
}
