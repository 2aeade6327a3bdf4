// Package words holds the candidate-word corpus and draws random word
// options for the drawer to choose from.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hakimalhazi/Skiblo/internal/utils"
)

// ErrEmptyCorpus is returned when a catalog would be built without a single word.
var ErrEmptyCorpus = errors.New("word corpus is empty")

// DefaultCorpus is the built-in Dutch word list.
var DefaultCorpus = []string{
	"Fiets", "Kaas", "Molen", "Tulpen", "Klomp", "Hond", "Kat", "Huis", "Boom", "Zon",
	"Strand", "Bal", "Computer", "Telefoon", "Auto", "Vliegtuig", "Boot", "Vis",
	"Appel", "Banaan", "Olifant", "Giraffe", "Kasteel", "Ridder", "Prinses",
	"Draak", "Tovenaar", "Spook", "Pompoen", "Sneeuwpop", "Kerstman", "Cadeau",
	"Taart", "IJsje", "Pizza", "Hamburger", "Patat", "Pannenkoek", "Wafel",
	"Koffie", "Thee", "Melk", "Water", "Vuur", "Aarde", "Lucht", "Regen",
	"Sneeuw", "Wind", "Storm", "Bliksem", "Regenboog", "Ster", "Maan",
}

// Catalog draws distinct random words from a fixed corpus. It is safe for
// concurrent use.
type Catalog struct {
	corpus []string
	rng    *rand.Rand
	mtx    sync.Mutex
}

// New creates a catalog over corpus. Blank entries and entries that only
// differ by case or accents are dropped, so every draw is made of distinct
// words. A zero seed picks a time-based one.
func New(corpus []string, seed int64) (*Catalog, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seen := make(map[string]struct{}, len(corpus))
	unique := make([]string, 0, len(corpus))
	for _, w := range corpus {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := utils.NormalizeString(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, w)
	}
	if len(unique) == 0 {
		return nil, ErrEmptyCorpus
	}

	return &Catalog{
		corpus: unique,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Default returns a catalog over DefaultCorpus.
func Default(seed int64) *Catalog {
	c, err := New(DefaultCorpus, seed)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of distinct words in the corpus.
func (c *Catalog) Len() int {
	return len(c.corpus)
}

// Draw returns k distinct words picked uniformly at random. Requests larger
// than the corpus are clamped to the corpus size, and k <= 0 yields nil.
func (c *Catalog) Draw(k int) []string {
	if k <= 0 {
		return nil
	}
	if k > len(c.corpus) {
		k = len(c.corpus)
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	// Partial Fisher-Yates over a copy: only the first k slots get shuffled.
	pool := make([]string, len(c.corpus))
	copy(pool, c.corpus)
	for i := 0; i < k; i++ {
		j := i + c.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	picked := make([]string, k)
	copy(picked, pool[:k])
	return picked
}

// Perm returns a random permutation of [0, n). It shares the catalog's
// random source so a seeded catalog keeps whole games reproducible.
func (c *Catalog) Perm(n int) []int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.rng.Perm(n)
}

// Intn returns a random number in [0, n).
func (c *Catalog) Intn(n int) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.rng.Intn(n)
}

// Read parses one word per line. Empty lines and lines starting with '#' are
// skipped.
func Read(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading words: %w", err)
	}
	return words, nil
}

// LoadFile builds a catalog from a words file.
func LoadFile(path string, seed int64) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open words file %q: %w", path, err)
	}
	defer file.Close()

	corpus, err := Read(file)
	if err != nil {
		return nil, err
	}
	return New(corpus, seed)
}
