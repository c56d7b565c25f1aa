// Package imageproc decodes, resizes and re-encodes still images.
//
// [Codec] is the seam the image pipeline depends on; [Native] is the
// production implementation built on disintegration/imaging, with WebP
// encoding from chai2010/webp and HEIC/HEIF decoding from adrium/goheif.
// HEIC input is never handed to the main decoder directly: [PreDecodeHEIC]
// first turns it into a lossless PNG raster.
package imageproc
