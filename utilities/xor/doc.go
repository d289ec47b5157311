// Package xor implements the single-byte XOR cipher the boot loader uses to
// obscure the application image.
//
// XOR with a fixed key is an involution: running the transform twice with the
// same key gives back the original bytes, so the same code both encrypts and
// decrypts.
package xor
