package pep440

// Converter maps an upstream version string to the form written into
// RPM spec files. It is injected into the driver so callers (and
// tests) can swap the conversion strategy.
type Converter interface {
	// Convert returns the converted version. Implementations must
	// return the input unchanged when they cannot handle it.
	Convert(version string) string
}

// RPMConverter converts PEP 440 versions to RPM-compatible strings.
// Versions that do not parse as PEP 440 (legacy version schemes) pass
// through unchanged.
type RPMConverter struct{}

func (RPMConverter) Convert(version string) string {
	v, err := Parse(version)
	if err != nil {
		return version
	}
	return v.RPM()
}

// Identity performs no conversion. It is the fallback strategy when
// PEP 440 handling is disabled.
type Identity struct{}

func (Identity) Convert(version string) string {
	return version
}
