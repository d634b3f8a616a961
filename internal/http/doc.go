// Package http contains the transport layer: routing, request decoding, the
// fixed JSON response envelope and the admin page. No business rules live
// here; handlers translate between the wire contract and the services.
package http
