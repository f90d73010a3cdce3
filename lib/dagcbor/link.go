// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dagcbor

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Multicodec and multihash codes used when building CIDs.
const (
	cidVersion1       = 0x01
	codecDAGCBOR      = 0x71
	multihashSHA256   = 0x12
	multihashBLAKE3   = 0x1e
	multibaseIdentity = 0x00
)

// HashFunction selects the multihash used for a computed CID.
type HashFunction uint8

const (
	HashSHA256 HashFunction = iota
	HashBLAKE3
)

// String returns the multihash name of the function.
func (h HashFunction) String() string {
	switch h {
	case HashSHA256:
		return "sha2-256"
	case HashBLAKE3:
		return "blake3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(h))
	}
}

// ParseHashFunction parses "sha2-256" (or "sha256") and "blake3".
func ParseHashFunction(name string) (HashFunction, error) {
	switch name {
	case "", "sha2-256", "sha256":
		return HashSHA256, nil
	case "blake3":
		return HashBLAKE3, nil
	default:
		return 0, fmt.Errorf("unknown hash function %q (want sha2-256 or blake3)", name)
	}
}

// ComputeCID returns the binary CIDv1 of an encoded DAG-CBOR block:
// version 1, the dag-cbor codec, and a 32-byte multihash of block.
func ComputeCID(block []byte, hash HashFunction) []byte {
	var code uint64
	var digest [32]byte
	switch hash {
	case HashBLAKE3:
		code = multihashBLAKE3
		digest = blake3.Sum256(block)
	default:
		code = multihashSHA256
		digest = sha256.Sum256(block)
	}

	cid := make([]byte, 0, 4+len(digest))
	cid = binary.AppendUvarint(cid, cidVersion1)
	cid = binary.AppendUvarint(cid, codecDAGCBOR)
	cid = binary.AppendUvarint(cid, code)
	cid = binary.AppendUvarint(cid, uint64(len(digest)))
	return append(cid, digest[:]...)
}

var base32Lower = base32.StdEncoding.WithPadding(base32.NoPadding)

// FormatCID renders a binary CID in its multibase base32 string form
// ("b" followed by lower-case RFC 4648 base32 without padding).
func FormatCID(cid []byte) string {
	return "b" + strings.ToLower(base32Lower.EncodeToString(cid))
}

// ParseCID reverses [FormatCID]. Only the base32 multibase form is
// accepted.
func ParseCID(text string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(text, "b")
	if !ok {
		return nil, fmt.Errorf("CID %q: only base32 (prefix \"b\") is supported", text)
	}
	cid, err := base32Lower.DecodeString(strings.ToUpper(encoded))
	if err != nil {
		return nil, fmt.Errorf("CID %q: %w", text, err)
	}
	if len(cid) == 0 {
		return nil, fmt.Errorf("CID %q is empty", text)
	}
	return cid, nil
}

// NewLink wraps a binary CID as a DAG-CBOR link: tag 42 around a byte
// string holding the multibase identity prefix and the CID.
func NewLink(cid []byte) Tag {
	content := make(Bytes, 0, 1+len(cid))
	content = append(content, multibaseIdentity)
	content = append(content, cid...)
	return Tag{Number: TagCID, Content: content}
}

// Link returns the binary CID carried by a tag 42 link.
func (t Tag) Link() ([]byte, bool) {
	if checkLink(t) != nil {
		return nil, false
	}
	content := t.Content.(Bytes)
	return []byte(content[1:]), true
}

// checkLink validates the content of a tag 42 item.
func checkLink(t Tag) *Error {
	if t.Number != TagCID {
		return valueError(KindUnsupportedTag, "tag %d is not a link", t.Number)
	}
	content, ok := t.Content.(Bytes)
	if !ok {
		return valueError(KindUnsupportedTag, "tag 42 wraps %s, want bytes", typeName(t.Content))
	}
	if len(content) < 2 || content[0] != multibaseIdentity {
		return valueError(KindUnsupportedTag, "tag 42 content is not a multibase-identity CID")
	}
	return nil
}

func typeName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}
