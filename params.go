package blake2many

import (
	"encoding/binary"
	"errors"

	"github.com/codahale/blake2many/internal/compress"
)

var (
	// ErrInvalidSize is returned when a digest size is not between 1 and Size bytes.
	ErrInvalidSize = errors.New("blake2many: invalid digest size")

	// ErrInvalidSalt is returned when a salt is longer than SaltSize bytes.
	ErrInvalidSalt = errors.New("blake2many: invalid salt length")

	// ErrInvalidPersonal is returned when a personalization string is longer than PersonalSize bytes.
	ErrInvalidPersonal = errors.New("blake2many: invalid personalization length")

	// ErrInvalidTree is returned when tree parameters are malformed.
	ErrInvalidTree = errors.New("blake2many: invalid tree parameters")
)

const (
	// SaltSize is the maximum length of a salt in bytes.
	SaltSize = 16

	// PersonalSize is the maximum length of a personalization string in bytes.
	PersonalSize = 16
)

// Params configure a BLAKE2b computation. The zero value, or a nil *Params, is plain BLAKE2b-512.
type Params struct {
	// Size is the digest size in bytes. Zero means Size.
	Size int

	// Salt is zero-padded to SaltSize bytes.
	Salt []byte

	// Personal is a personalization string, zero-padded to PersonalSize bytes.
	Personal []byte

	// Tree holds tree hashing parameters. Nil means sequential hashing.
	Tree *Tree
}

// Tree holds the parameters of a node in a BLAKE2b hash tree (RFC 7693, section 2.8; BLAKE2 paper, section 2.10).
type Tree struct {
	FanOut     uint8  // 0 for unlimited
	MaxDepth   uint8  // 1..255
	LeafLength uint32 // 0 for unlimited
	NodeOffset uint64
	NodeDepth  uint8 // 0 for leaves
	InnerSize  uint8 // 0..Size
	LastNode   bool  // set on the last node of each level
}

// Validate returns an error if the parameters cannot be encoded in a BLAKE2b parameter block.
func (p *Params) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size < 0 || p.Size > Size {
		return ErrInvalidSize
	}

	if len(p.Salt) > SaltSize {
		return ErrInvalidSalt
	}

	if len(p.Personal) > PersonalSize {
		return ErrInvalidPersonal
	}

	if t := p.Tree; t != nil && (t.MaxDepth == 0 || t.InnerSize > Size) {
		return ErrInvalidTree
	}

	return nil
}

// digestSize returns the digest size in bytes.
func (p *Params) digestSize() int {
	if p == nil || p.Size == 0 {
		return Size
	}
	return p.Size
}

// job returns a fresh compression job for the parameters: the IV XORed with the parameter block, and a zero counter.
func (p *Params) job() (compress.Job, error) {
	if err := p.Validate(); err != nil {
		return compress.Job{}, err
	}

	var block [64]byte
	block[0] = byte(p.digestSize())
	// block[1] is the key length; keyed hashing is not supported.
	block[2], block[3] = 1, 1
	if p != nil {
		if t := p.Tree; t != nil {
			block[2], block[3] = t.FanOut, t.MaxDepth
			binary.LittleEndian.PutUint32(block[4:], t.LeafLength)
			binary.LittleEndian.PutUint64(block[8:], t.NodeOffset)
			block[16], block[17] = t.NodeDepth, t.InnerSize
		}
		copy(block[32:32+SaltSize], p.Salt)
		copy(block[48:48+PersonalSize], p.Personal)
	}

	return compress.NewJob(&block, p != nil && p.Tree != nil && p.Tree.LastNode), nil
}
