// SPDX-License-Identifier: GPL-3.0-or-later

package dnsquery

import (
	"encoding/binary"

	"github.com/miekg/dns"
)

const (
	// TypeA is the query type requesting IPv4 addresses.
	TypeA = dns.TypeA

	// ClassINET is the Internet class.
	ClassINET = dns.ClassINET

	// FlagRecursionDesired is the header flag asking the server to recurse.
	FlagRecursionDesired = 1 << 8
)

// HeaderSize is the size of a serialized [Header].
const HeaderSize = 12

// Header is the fixed-size DNS message header.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Bytes returns the big-endian serialization of the header.
func (h Header) Bytes() []byte {
	return h.appendTo(make([]byte, 0, HeaderSize))
}

func (h Header) appendTo(out []byte) []byte {
	out = binary.BigEndian.AppendUint16(out, h.ID)
	out = binary.BigEndian.AppendUint16(out, h.Flags)
	out = binary.BigEndian.AppendUint16(out, h.QDCount)
	out = binary.BigEndian.AppendUint16(out, h.ANCount)
	out = binary.BigEndian.AppendUint16(out, h.NSCount)
	return binary.BigEndian.AppendUint16(out, h.ARCount)
}

// EncodeHeader is a convenience wrapper around [Header.Bytes].
func EncodeHeader(h Header) []byte {
	return h.Bytes()
}

// Question is a single DNS question.
//
// Construct using [NewQuestion].
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// NewQuestion returns the [TypeA], [ClassINET] question for name.
func NewQuestion(name string) Question {
	return Question{Name: name, Type: TypeA, Class: ClassINET}
}

// Bytes returns the encoded name followed by the big-endian type and class.
func (q Question) Bytes() []byte {
	return q.appendTo(make([]byte, 0, len(q.Name)+6))
}

func (q Question) appendTo(out []byte) []byte {
	out = appendName(out, q.Name)
	out = binary.BigEndian.AppendUint16(out, q.Type)
	return binary.BigEndian.AppendUint16(out, q.Class)
}

// EncodeQuestion returns the serialized [NewQuestion] for name.
func EncodeQuestion(name string) []byte {
	return NewQuestion(name).Bytes()
}

// IDSource returns transaction IDs. Implementations must draw uniformly
// from the whole uint16 range.
type IDSource func() uint16

// DefaultIDSource is the [IDSource] used by [BuildQuery] and [NewQuery].
var DefaultIDSource IDSource = dns.Id

// Builder builds query messages using an injected [IDSource].
//
// A Builder holds no mutable state and is safe for concurrent use
// as long as its [IDSource] is.
type Builder struct {
	ids IDSource
}

// NewBuilder returns a [*Builder] drawing IDs from ids. A nil ids
// means [DefaultIDSource].
func NewBuilder(ids IDSource) *Builder {
	if ids == nil {
		ids = DefaultIDSource
	}
	return &Builder{ids: ids}
}

// Build returns the wire format of a recursive A query for name.
func (b *Builder) Build(name string) []byte {
	return packQuery(b.ids(), name)
}

// BuildQuery returns the wire format of a recursive A query for name
// using a random transaction ID.
func BuildQuery(name string) []byte {
	return packQuery(DefaultIDSource(), name)
}

func packQuery(id uint16, name string) []byte {
	header := Header{
		ID:      id,
		Flags:   FlagRecursionDesired,
		QDCount: 1,
	}
	question := NewQuestion(name)
	out := make([]byte, 0, HeaderSize+len(name)+6)
	out = header.appendTo(out)
	return question.appendTo(out)
}

// Query is a DNS query.
//
// Construct using [NewQuery] or set the fields manually.
type Query struct {
	// ID is the transaction ID.
	ID uint16

	// Name is the domain name to query.
	Name string
}

// NewQuery constructs a new [*Query] for name with a random ID.
func NewQuery(name string) *Query {
	return &Query{ID: DefaultIDSource(), Name: name}
}

// Clone returns a copy of the query.
func (q *Query) Clone() *Query {
	return &Query{ID: q.ID, Name: q.Name}
}

// Pack returns the wire format of the query.
func (q *Query) Pack() []byte {
	return packQuery(q.ID, q.Name)
}

// NewMsg unpacks the wire format of the query into a [*dns.Msg], which
// is useful for printing it. It may fail when the name does not encode
// to a valid DNS name (e.g., a label is longer than 63 bytes).
func (q *Query) NewMsg() (*dns.Msg, error) {
	msg := new(dns.Msg)
	if err := msg.Unpack(q.Pack()); err != nil {
		return nil, err
	}
	return msg, nil
}
