// Package pinblock implements ISO 9564-1 Format 0, 3, and 4 PIN-block
// construction (spec.md §4.4). This is the full enumeration the data
// model names (spec.md §3) — the teacher repo's wider Thales/VISA/IBM
// format catalogue sits outside this system's scope; see DESIGN.md.
package pinblock

// Format enumerates the supported PIN-block formats.
type Format int

const (
	// ISO0 is ISO 9564-1 Format 0: clear PIN field XORed with a PAN
	// field, 'F' padding.
	ISO0 Format = iota
	// ISO3 is ISO 9564-1 Format 3: like ISO0 but with random-hex-digit
	// padding instead of 'F'.
	ISO3
	// ISO4 is ISO 9564-1 Format 4: AES Encrypt-XOR-Encrypt construction.
	ISO4
)

func (f Format) String() string {
	switch f {
	case ISO0:
		return "ISO-0"
	case ISO3:
		return "ISO-3"
	case ISO4:
		return "ISO-4"
	default:
		return "unknown"
	}
}
