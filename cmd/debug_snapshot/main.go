package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"achievement-manager/core/cachefile"
	"achievement-manager/core/config"
	"achievement-manager/core/racache"
	"achievement-manager/core/storage"
	"achievement-manager/feature/remote"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <game_id>", os.Args[0])
	}
	id, err := strconv.ParseUint(os.Args[1], 10, 32)
	if err != nil || id == 0 {
		log.Fatalf("expected game_id to be positive integer, but got %s", os.Args[1])
	}
	gameID := uint32(id)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	var client storage.Client
	if cfg.RACache.Backend == racache.BackendS3 {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			log.Fatal(err)
		}
	}
	store, err := racache.New(cfg.RACache, client, cfg.Storage.Bucket)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Remote snapshot ===")
	data, err := store.ReadFile(ctx, racache.SnapshotPath(gameID))
	if err != nil {
		log.Fatal(err)
	}
	snap, err := remote.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Title: %s, sets: %d\n", snap.Title, len(snap.Sets))
	for _, s := range snap.Sets {
		fmt.Printf("  set %d (%s) %q: %d achievements, %d leaderboards\n",
			s.AchievementSetID, s.Type, s.Title, len(s.Achievements), len(s.Leaderboards))
	}

	set, err := snap.ToSet(gameID, remote.ConvertOptions{IncludeUnofficial: true})
	if err != nil {
		log.Fatal(err)
	}
	for _, a := range set.Assets() {
		fmt.Printf("  %s %d %q\n", a.Kind(), a.ID(), a.Title())
	}

	fmt.Println("=== Local file ===")
	content, err := store.ReadFile(ctx, racache.LocalPath(gameID))
	if errors.Is(err, racache.ErrNotExist) {
		fmt.Println("not found")
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	file, err := cachefile.Parse(string(content), cachefile.ParseOptions{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Version: %s, title: %q, entries: %d\n", file.Version, file.Title, len(file.Entries))
	for _, e := range file.Entries {
		if e.Type == cachefile.EntryInvalid {
			fmt.Printf("  line %d: %v\n", e.Number, e.Err)
		}
	}
}
