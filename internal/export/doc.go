// Package export writes descent runs to files: animated GIF and HTML, MJPEG
// AVI, static plots through gonum/plot, SVG, CSV and JSON.
package export
