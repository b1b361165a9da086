// Package codec converts between request maps and the wire form.
//
// Outbound, EncodeRequest stamps the session fields onto a request,
// flattens nested values to JSON strings and, when a key is held, pads and
// encrypts the data payload. Inbound, DecodeResponse recognizes plaintext
// batches by their brackets and decrypts everything else before parsing it
// into events. SourceURL builds the GET URLs used for images, downloads and
// uploads with the same stamping and encryption rules.
package codec
