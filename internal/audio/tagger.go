package audio

import (
	"fmt"
	"sort"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// Tagger writes Vorbis comments and cover art into FLAC files.
//
// The audio stream and STREAMINFO are never modified; only the
// VORBIS_COMMENT and PICTURE metadata blocks are replaced.
type Tagger struct{}

// NewTagger creates a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag writes the given tag set into the FLAC file at path, replacing any
// existing Vorbis comment block. When artwork is non-nil it is embedded as
// the front cover, replacing existing picture blocks.
//
// Tags are written in sorted key order so output files are byte-stable for
// the same inputs. A nil/empty tag set with no artwork is a no-op.
func (t *Tagger) Tag(path string, tags map[string]string, artwork []byte) error {
	if len(tags) == 0 && artwork == nil {
		return nil
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	if len(tags) > 0 {
		cmts := flacvorbis.New()
		keys := make([]string, 0, len(tags))
		for key := range tags {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := cmts.Add(key, tags[key]); err != nil {
				return fmt.Errorf("add tag %s: %w", key, err)
			}
		}
		cmtBlock := cmts.Marshal()

		replaced := false
		for i, meta := range f.Meta {
			if meta.Type == flac.VorbisComment {
				f.Meta[i] = &cmtBlock
				replaced = true
				break
			}
		}
		if !replaced {
			f.Meta = append(f.Meta, &cmtBlock)
		}
	}

	if artwork != nil {
		kept := make([]*flac.MetaDataBlock, 0, len(f.Meta))
		for _, meta := range f.Meta {
			if meta.Type != flac.Picture {
				kept = append(kept, meta)
			}
		}
		f.Meta = kept

		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front Cover", artwork, "image/jpeg")
		if err != nil {
			return fmt.Errorf("create picture block: %w", err)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save flac: %w", err)
	}
	return nil
}
