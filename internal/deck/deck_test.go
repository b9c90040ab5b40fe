package deck

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/conorfennell/flipmatch/internal/domain"
)

func counts(cards []string) map[string]int {
	m := make(map[string]int)
	for _, c := range cards {
		m[c]++
	}
	return m
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, d := range domain.Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			pairs := d.Preset().Pairs
			cards, err := Generate(DefaultIcons, pairs, rng)
			if err != nil {
				t.Fatalf("Generate() returned an unexpected error: %v", err)
			}
			if len(cards) != 2*pairs {
				t.Fatalf("Expected %d cards, but got %d", 2*pairs, len(cards))
			}
			c := counts(cards)
			if len(c) != pairs {
				t.Errorf("Expected %d distinct icons, but got %d", pairs, len(c))
			}
			for _, icon := range DefaultIcons[:pairs] {
				if c[icon] != 2 {
					t.Errorf("Expected icon %s twice, but got %d", icon, c[icon])
				}
			}
		})
	}
}

func TestGenerateIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	first, err := Generate(DefaultIcons, 12, rng)
	if err != nil {
		t.Fatalf("Generate() returned an unexpected error: %v", err)
	}
	want := append([]string(nil), first...)
	sort.Strings(want)

	for i := 0; i < 20; i++ {
		next, err := Generate(DefaultIcons, 12, rng)
		if err != nil {
			t.Fatalf("Generate() returned an unexpected error: %v", err)
		}
		got := append([]string(nil), next...)
		sort.Strings(got)
		for k := range want {
			if got[k] != want[k] {
				t.Fatalf("Run %d: multiset differs at %d: %q vs %q", i, k, got[k], want[k])
			}
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("pool too small", func(t *testing.T) {
		_, err := Generate([]string{"a", "b"}, 3, rng)
		if !errors.Is(err, ErrPoolTooSmall) {
			t.Errorf("Expected ErrPoolTooSmall, but got %v", err)
		}
	})

	t.Run("repeated icon", func(t *testing.T) {
		_, err := Generate([]string{"a", "a", "b"}, 2, rng)
		if !errors.Is(err, ErrPoolTooSmall) {
			t.Errorf("Expected ErrPoolTooSmall, but got %v", err)
		}
	})

	t.Run("zero pairs", func(t *testing.T) {
		if _, err := Generate(DefaultIcons, 0, rng); err == nil {
			t.Error("Expected an error for zero pairs")
		}
	})
}

func TestShuffleUniformity(t *testing.T) {
	// Every icon should land in every slot about equally often.
	rng := rand.New(rand.NewSource(7))
	const runs = 6000
	slots := make([]map[string]int, 3)
	for i := range slots {
		slots[i] = make(map[string]int)
	}
	for i := 0; i < runs; i++ {
		cards := []string{"a", "b", "c"}
		Shuffle(cards, rng)
		for pos, c := range cards {
			slots[pos][c]++
		}
	}
	for pos, m := range slots {
		for _, icon := range []string{"a", "b", "c"} {
			if n := m[icon]; n < 1700 || n > 2300 {
				t.Errorf("Slot %d holds %q %d times, expected about %d", pos, icon, n, runs/3)
			}
		}
	}
}

func TestNewRand(t *testing.T) {
	rng, err := NewRand()
	if err != nil {
		t.Fatalf("NewRand() returned an unexpected error: %v", err)
	}
	if _, err := Generate(DefaultIcons, 6, rng); err != nil {
		t.Errorf("Generate() with seeded source failed: %v", err)
	}
}
