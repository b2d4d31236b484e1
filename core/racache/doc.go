// Package racache gives access to the emulator's RACache directory.
//
// The directory holds the RAPrefs*.cfg credential files at its root, remote
// snapshots at RACache/Data/<gameId>.json and local files at
// RACache/Data/<gameId>-User.txt. A Store reads and writes those files either on
// a filesystem (afero) or in an object storage bucket mirroring the same layout.
//
// # Usage
//
//	store, err := racache.New(cfg.RACache, nil)
//	data, err := store.ReadFile(ctx, racache.LocalPath(1234))
//	if errors.Is(err, racache.ErrNotExist) {
//	    // no local file yet
//	}
package racache
