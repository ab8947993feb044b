// SPDX-License-Identifier: GPL-3.0-or-later

package dnsquery

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLabelLength is the largest label length that fits the length prefix.
const MaxLabelLength = 255

// ErrInvalidLabelLength indicates that a label does not fit its length prefix.
var ErrInvalidLabelLength = errors.New("invalid DNS label length")

// EncodeName encodes a dot-separated domain name as a sequence of
// length-prefixed labels terminated by a zero-length label.
//
// The name is not validated. A label longer than [MaxLabelLength] bytes
// produces a truncated length prefix, and consecutive dots produce empty
// labels. The empty name encodes to a single zero byte.
func EncodeName(name string) []byte {
	out := make([]byte, 0, len(name)+2)
	return appendName(out, name)
}

// EncodeNameStrict is like [EncodeName] but fails with [ErrInvalidLabelLength]
// when any label is longer than [MaxLabelLength] bytes.
func EncodeNameStrict(name string) ([]byte, error) {
	for idx, label := range strings.Split(name, ".") {
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: label %d is %d bytes", ErrInvalidLabelLength, idx, len(label))
		}
	}
	return EncodeName(name), nil
}

func appendName(out []byte, name string) []byte {
	for _, label := range strings.Split(name, ".") {
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0)
}
