// ABOUTME: Version and product identification constants
// ABOUTME: Reported by -version and stamped into WAV INFO metadata
package version

const (
	// Version is the release of the phreaking tool
	Version = "0.2.0"
	// Product is the tool name
	Product = "phreaking"
	// Manufacturer is stamped as the artist of titled WAV files
	Manufacturer = "twe4ked"
)

// String returns "product version"
func String() string {
	return Product + " " + Version
}
