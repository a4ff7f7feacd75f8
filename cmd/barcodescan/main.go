// Command barcodescan decodes EAN-13/UPC-A, Code 128, and QR (version 1)
// symbols out of raster images, and can synthesize sample symbols for a
// quick self-check.
package main

func main() {
	Execute()
}
