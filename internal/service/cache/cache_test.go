package cache

import "testing"

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Cat DOG", "cat dog"},
		{"sorts terms", "dog cat", "cat dog"},
		{"collapses whitespace", "  cat \t dog \n", "cat dog"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeQuery(tc.in); got != tc.want {
				t.Errorf("normalizeQuery(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildKeyEquivalentQueriesShareEntries(t *testing.T) {
	c := &RankCache{}
	a := c.buildKey("doc-1", "cat dog", 10)
	b := c.buildKey("doc-1", "DOG   cat", 10)
	if a != b {
		t.Errorf("equivalent queries produced different keys: %q vs %q", a, b)
	}
	if c.buildKey("doc-1", "cat dog", 5) == a {
		t.Error("different limits share a cache key")
	}
	if c.buildKey("doc-2", "cat dog", 10) == a {
		t.Error("different corpora share a cache key")
	}
}

func TestBuildKeyCorpusPrefix(t *testing.T) {
	c := &RankCache{}
	prefix := keyPrefix + corpusHash("doc-1") + ":"
	key := c.buildKey("doc-1", "cat", 10)
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		t.Errorf("key %q does not start with corpus prefix %q", key, prefix)
	}
}
