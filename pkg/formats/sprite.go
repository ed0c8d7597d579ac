package formats

import (
	"fmt"
	"io"
	"os"
)

// SpriteHeaderSize is the size of the fixed sprite header in bytes.
const SpriteHeaderSize = 12

// SpriteReferenceSize is the size of the raw frame reference text.
const SpriteReferenceSize = 6

// maxFramePrealloc bounds the initial frame slice capacity; the declared
// frame count is not trusted for allocation.
const maxFramePrealloc = 1024

// SpriteFrame is one frame of a sprite frame set.
type SpriteFrame struct {
	Image     uint32 `yaml:"image"`
	Reference string `yaml:"reference"` // raw bytes, not truncated
}

// Sprite is a sprite animation frame set for one direction and action.
type Sprite struct {
	Direction  uint16        `yaml:"direction"`
	Action     uint16        `yaml:"action"`
	Duration   uint32        `yaml:"duration"`
	FrameCount uint32        `yaml:"frame_count"`
	Frames     []SpriteFrame `yaml:"frames"`
}

// ParseSprite decodes the sprite frame set that starts at offset in r.
func ParseSprite(r io.ReadSeeker, offset int64) (*Sprite, error) {
	if err := seekTo(r, offset); err != nil {
		return nil, err
	}

	fr := newFieldReader(r)
	spr := &Sprite{
		Direction:  fr.uint16LE("direction"),
		Action:     fr.uint16LE("action"),
		Duration:   fr.uint32LE("duration"),
		FrameCount: fr.uint32LE("frame count"),
	}
	if fr.err != nil {
		return nil, fr.err
	}

	spr.Frames = make([]SpriteFrame, 0, min(spr.FrameCount, maxFramePrealloc))
	for i := uint32(0); i < spr.FrameCount; i++ {
		frame := SpriteFrame{
			Image:     fr.uint32LE("frame image"),
			Reference: string(fr.raw("frame reference", SpriteReferenceSize)),
		}
		if fr.err != nil {
			return nil, fmt.Errorf("parsing frame %d: %w", i, fr.err)
		}
		spr.Frames = append(spr.Frames, frame)
	}

	return spr, nil
}

// ParseSpriteFile decodes the sprite frame set at offset in the file at path.
func ParseSpriteFile(path string, offset int64) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite file: %w", err)
	}
	defer f.Close()

	return ParseSprite(f, offset)
}
