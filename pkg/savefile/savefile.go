// Package savefile is the entry point for reading and writing game files.
//
// FromBytes looks at the 4-byte magic, decodes the matching record tree and
// returns a DataFile that owns both the original bytes and the tree. Write
// encodes the tree into a copy of the original bytes, so every byte the tree
// does not describe comes back unchanged.
//
// A DataFile has a single owner. It does no locking; callers that share one
// across goroutines must serialize access themselves.
package savefile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ssargent/savekit/pkg/layout"
	"github.com/ssargent/savekit/pkg/savedata"
)

// Kind identifies a file format.
type Kind int

const (
	KindSave Kind = iota + 1
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindSave:
		return "save"
	case KindSystem:
		return "system"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "save":
		return KindSave, nil
	case "system":
		return KindSystem, nil
	default:
		return 0, fmt.Errorf("unknown file kind %q", s)
	}
}

// ErrUnrecognized is returned for input whose magic matches no known kind.
var ErrUnrecognized = fmt.Errorf("%w: unrecognized file", layout.ErrFormat)

// VersionError reports a recognized file from an unsupported game version.
type VersionError = savedata.VersionError

// DataFile is a decoded file of either kind.
type DataFile interface {
	Kind() Kind
	// Original returns the bytes the file was decoded from. Callers must not
	// modify them.
	Original() []byte
	// Tree returns the decoded record tree.
	Tree() layout.Struct
	// Write encodes the tree into a copy of Original.
	Write() ([]byte, error)
}

type container struct {
	kind Kind
	raw  []byte
	tree layout.Struct
}

func (c *container) Kind() Kind          { return c.kind }
func (c *container) Original() []byte    { return c.raw }
func (c *container) Tree() layout.Struct { return c.tree }

func (c *container) Write() ([]byte, error) {
	out := bytes.Clone(c.raw)
	if err := layout.Encode(out, c.tree); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.kind, err)
	}
	return out, nil
}

// SaveFile is a decoded save file.
type SaveFile struct {
	container
	Data *savedata.Save
}

// SystemFile is a decoded system file.
type SystemFile struct {
	container
	Data *savedata.System
}

// Magic returns the magic value at the start of b.
func Magic(b []byte) (uint32, error) {
	var magic uint32
	if err := layout.Num(&magic).Decode(layout.NewCursor(b)); err != nil {
		return 0, err
	}
	return magic, nil
}

// FromBytes decodes b. The returned file keeps its own copy of b.
//
// Input shorter than four bytes or shorter than its kind's fixed size fails
// with layout.ErrBounds; an unknown magic with ErrUnrecognized; a known magic
// with the wrong version with a *VersionError. The latter two also match
// layout.ErrFormat.
func FromBytes(b []byte) (DataFile, error) {
	magic, err := Magic(b)
	if err != nil {
		return nil, err
	}

	raw := bytes.Clone(b)
	switch magic {
	case savedata.SaveMagic:
		f := &SaveFile{Data: &savedata.Save{}}
		f.container = container{kind: KindSave, raw: raw, tree: f.Data}
		if err := layout.Read(raw, f.Data); err != nil {
			return nil, fmt.Errorf("decode save: %w", err)
		}
		return f, nil
	case savedata.SystemMagic:
		f := &SystemFile{Data: &savedata.System{}}
		f.container = container{kind: KindSystem, raw: raw, tree: f.Data}
		if err := layout.Read(raw, f.Data); err != nil {
			return nil, fmt.Errorf("decode system: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w (magic %#08x)", ErrUnrecognized, magic)
	}
}

// IsVersionError reports whether err is, or wraps, a *VersionError.
func IsVersionError(err error) bool {
	var ve *VersionError
	return errors.As(err, &ve)
}

var (
	_ DataFile = (*SaveFile)(nil)
	_ DataFile = (*SystemFile)(nil)
)
