// Package raster paints layout documents into RGBA images.
//
// Text is drawn with the Go fonts, embedded images are decoded from their
// data URIs and resampled with Catmull-Rom, and the watermark is drawn
// as rotated tiles beneath the content.
package raster
