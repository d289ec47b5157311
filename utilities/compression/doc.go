// Package compression implements the run-length encoding used for packed boot
// images.
//
// The scheme is the simplest one there is: every run of identical bytes is
// written as a pair of bytes, the run length followed by the byte value.
//
//	AAAABCC
//	04 A 01 B 02 C
//
// Since the count is a single unsigned byte, runs longer than 255 bytes are
// split into consecutive pairs with the same value. A run of 300 "X" is stored
// as `FF X 2D X`. Every pair has a count in [1, 255]; a count of 0 never occurs
// in valid output.
//
// Data with no repetition doubles in size, since every byte becomes its own
// pair. This is acceptable for the images we pack: application binaries are
// padded with long stretches of identical bytes, which is where the savings
// come from.
//
// The encoded stream carries no header, length, or terminator. Anything reading
// it back needs to know how long the encoded data is from somewhere else.

package compression
