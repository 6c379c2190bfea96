// Package pixelcipher implements a deterministic, key-reversible obfuscation cipher
// for RGB pixel grids.
//
// A key is hashed into a 31-bit seed. The seed drives a deterministic stream that
// supplies one additive mask per channel (applied modulo 256) and one positional
// permutation per channel. Encrypt applies the color mask and then the permutation;
// Decrypt undoes them in mirrored order.
//
// The cipher offers no confidentiality against an informed attacker. It is an
// obfuscation layer, not authenticated encryption.
//
// Two stream formats are pinned:
//   - FormatMT19937 reproduces the NumPy RandomState sampling used by earlier tools,
//     so their output images decrypt unchanged.
//   - FormatChaCha20 draws words from a ChaCha20 keystream keyed by HKDF over the seed.
package pixelcipher
