// Package protocol owns the binary struct codec shared by every wire
// implementation.
//
// Ownership boundary:
// - type tags and typed values
// - the type-tag dispatcher (WriteTyped/ReadTyped/Skip)
// - the struct field-header loop and the Message contract
//
// Byte layouts live in the implementation packages (tbinary, fastbinary);
// both must stay byte-for-byte compatible.
package protocol
