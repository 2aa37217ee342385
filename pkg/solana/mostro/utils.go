package mostro

import (
	"crypto/ed25519"
	"encoding/binary"
)

func putDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += 8
}
func getDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, 8)
	copy(*dst, src[*offset:])
	*offset += 8
}

func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

// Strings are borsh encoded: a u32 little endian byte length followed by the
// UTF-8 bytes.
func putString(dst []byte, v string, offset *int) {
	putUint32(dst, uint32(len(v)), offset)
	copy(dst[*offset:], v)
	*offset += len(v)
}
func getString(src []byte, dst *string, offset *int) error {
	if len(src)-*offset < 4 {
		return ErrInvalidAccountData
	}

	var length uint32
	getUint32(src, &length, offset)
	if uint64(len(src)-*offset) < uint64(length) {
		return ErrInvalidAccountData
	}

	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return nil
}
func stringSize(v string) int {
	return 4 + len(v)
}

func putBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}
func getBool(src []byte, dst *bool, offset *int) error {
	switch src[*offset] {
	case 0:
		*dst = false
	case 1:
		*dst = true
	default:
		return ErrInvalidAccountData
	}
	*offset += 1
	return nil
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}
func getUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[*offset]
	*offset += 1
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}
func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func getInt64(src []byte, dst *int64, offset *int) {
	*dst = int64(binary.LittleEndian.Uint64(src[*offset:]))
	*offset += 8
}

func uint64Seed(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
