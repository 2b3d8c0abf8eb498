package ioutils

import (
	"os"
	"path/filepath"
)

// coverArtNames are the filenames checked by FindCoverArt, in preference
// order.
var coverArtNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"front.jpg", "front.jpeg", "front.png",
}

// FindCoverArt returns the path of a cover image in dir, if one exists
// under a conventional name.
func FindCoverArt(dir string) (string, bool) {
	for _, name := range coverArtNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
