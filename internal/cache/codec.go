// Challengerec - Collaborative Challenge Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/challengerec

package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire format of a cached list:
//
//	byte 0-1  magic "CR"
//	byte 2    format version (1)
//	uvarint   element count
//	varint... zig-zag encoded ids
const (
	codecMagic0   = 'C'
	codecMagic1   = 'R'
	codecVersion1 = 1
	headerLen     = 3

	// maxDecodeLen rejects counts no real catalog reaches, so a corrupt
	// header cannot trigger a huge allocation.
	maxDecodeLen = 1 << 22
)

var (
	ErrCorrupt            = errors.New("cache: corrupt list encoding")
	ErrUnsupportedVersion = errors.New("cache: unsupported list encoding version")
)

// EncodeList serializes ids in the version 1 format.
func EncodeList(ids []int64) []byte {
	buf := make([]byte, 0, headerLen+binary.MaxVarintLen64+len(ids)*3)
	buf = append(buf, codecMagic0, codecMagic1, codecVersion1)
	buf = binary.AppendUvarint(buf, uint64(len(ids)))
	for _, id := range ids {
		buf = binary.AppendVarint(buf, id)
	}
	return buf
}

// DecodeList parses data produced by EncodeList. It never returns a partial
// list.
func DecodeList(data []byte) ([]int64, error) {
	if len(data) < headerLen || data[0] != codecMagic0 || data[1] != codecMagic1 {
		return nil, ErrCorrupt
	}
	if data[2] != codecVersion1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[2])
	}
	data = data[headerLen:]

	count, n := binary.Uvarint(data)
	if n <= 0 || count > maxDecodeLen {
		return nil, ErrCorrupt
	}
	data = data[n:]

	ids := make([]int64, 0, count)
	for i := uint64(0); i < count; i++ {
		id, n := binary.Varint(data)
		if n <= 0 {
			return nil, ErrCorrupt
		}
		ids = append(ids, id)
		data = data[n:]
	}
	if len(data) != 0 {
		return nil, ErrCorrupt
	}
	return ids, nil
}
