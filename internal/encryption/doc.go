// Package encryption applies the pixel cipher to image files.
// Files are processed concurrently and written atomically through temp files.
// Output is always a lossless format so that encrypted images decrypt exactly.
package encryption
