// Package connection provides the RESP client used by respkv-cli.
//
// A Client holds one TCP connection, dials lazily on the first command and
// speaks request/response: every Do call writes one command array and reads
// one reply.
package connection
