// Package resp implements the subset of the RESP2 wire format spoken by
// respkv.
//
//   - reader.go: request frames (arrays of bulk strings, inline commands)
//     and server replies, with size limits
//   - reply.go: the Reply tagged value and its encoding
//
// Requests are always arrays of bulk strings:
//
//	*<argc>\r\n
//	$<len(arg0)>\r\n
//	<arg0>\r\n
//	...
package resp
