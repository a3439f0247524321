/*
Package brandforge implements the logo compositing and raster-to-vector
tracing pipeline behind the brand identity generator.

Given an AI generated icon (a raster image with no embedded text) and a
company name, the package composites the two into three canonical logo
layouts (horizontal, vertical and icon only) and exports each one as a
flattened PNG data URL. A companion vectorizer converts the icon bitmap
into a scalable SVG document by thresholding the pixels into a binary
mask, collecting the connected foreground regions with a flood fill and
emitting one run-length strip path per region.

The generative collaborators (identity and image generation) live in the
identity subpackage, font registration and measurement in fontkit.
*/
package brandforge
