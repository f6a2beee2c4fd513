// Command demo fills a small cache and prints what survives eviction.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"cache-manager/internal/store"
	"cache-manager/internal/store/policy"
)

func main() {
	var (
		capacity = flag.Int("cap", 256, "cache capacity (entries)")
		kind     = flag.String("policy", "fifo", "eviction policy: fifo | lru | lfu | random")
		n        = flag.Int("n", 1, "number of keys to insert")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Stdout, logger, *capacity, *kind, *n); err != nil {
		logger.Error("demo failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// run inserts n generated entries into a cache of the given size and policy,
// then writes the surviving entries to w in key order.
func run(w io.Writer, logger *slog.Logger, capacity int, kind string, n int) error {
	k, err := policy.ParseKind(kind)
	if err != nil {
		return err
	}
	p, err := policy.New[string](k)
	if err != nil {
		return err
	}
	c, err := store.New(capacity, p,
		store.WithOnEvict(func(key, _ string) {
			logger.Info("evicted", slog.String("key", key))
		}),
	)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		key, value := entry(i)
		if _, _, err := c.Insert(key, value); err != nil {
			return fmt.Errorf("insert %s: %w", key, err)
		}
	}

	snap := c.Snapshot()
	keys := make([]string, 0, len(snap))
	for key := range snap {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s=%s\n", key, snap[key])
	}
	fmt.Fprintf(w, "len=%d cap=%d\n", c.Len(), c.Capacity())
	return nil
}

// entry names the i-th demo entry: KeyA/ValueA through KeyZ/ValueZ, then
// KeyA1/ValueA1 and so on.
func entry(i int) (key, value string) {
	suffix := string('A' + rune(i%26))
	if i >= 26 {
		suffix = fmt.Sprintf("%s%d", suffix, i/26)
	}
	return "Key" + suffix, "Value" + suffix
}
