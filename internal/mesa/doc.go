// Package mesa knows the layout of a MESA installation and model work
// directory, and checks that a requested run is valid before anything
// is modified.
//
// Validate checks, in order: the installation directory exists, the
// model directory exists, the installation's version marker matches
// SupportedVersion, the initial mass is positive, and the initial
// metallicity is within [0, MaxMetallicity]. The first failure is
// returned; it wraps one of the sentinel errors so callers can use
// errors.Is:
//
//	if err := mesa.Validate(params); errors.Is(err, mesa.ErrUnsupportedVersion) {
//	    ...
//	}
package mesa
