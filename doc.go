// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnsquery serializes single-question DNS queries.
//
// [EncodeName], [Header.Bytes] and [Question.Bytes] produce the wire format
// of the individual parts of a query. [BuildQuery] and [*Builder] glue them
// together into a complete message asking for the A records of a name
// with recursion desired.
//
// [*UDPTransport] sends the raw query bytes to a server and returns the raw
// reply bytes. The reply is not parsed.
//
// Encoding is permissive: labels longer than 255 bytes are not rejected by
// [EncodeName]. Use [EncodeNameStrict] to reject them.
package dnsquery
