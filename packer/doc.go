// Package packer turns a raw application binary into the image the boot loader
// expects.
//
// Packing is a fixed pipeline of three stages, each working on the complete
// output of the one before it:
//
//  1. Every byte of the input is XORed with the key (see [xor.Transform]).
//  2. The encrypted bytes are run-length encoded as (count, value) pairs (see
//     [compression.CompressRuns]).
//  3. Zero bytes are appended until the image is a whole number of sectors
//     (see [sectors.WritePadding]).
//
// The image has no header, so the boot loader (and [Verify]) must be told the
// compressed size separately. It's reported in the [Summary].
package packer
