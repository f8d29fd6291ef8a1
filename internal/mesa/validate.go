package mesa

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// SupportedVersion is the only MESA release the course models work with.
const SupportedVersion = "15140"

// MaxMetallicity is the upper bound accepted for the initial Z.
const MaxMetallicity = 0.04

var (
	ErrMissingDirectory   = errors.New("missing directory")
	ErrUnsupportedVersion = errors.New("unsupported MESA version")
	ErrInvalidMass        = errors.New("invalid initial mass")
	ErrInvalidMetallicity = errors.New("invalid initial metallicity")
)

// Params are the inputs checked by Validate.
type Params struct {
	MesaDir     string
	ModelDir    string
	InitialMass float64
	InitialZ    float64
}

// Validate checks p and returns the first problem found.
func Validate(p Params) error {
	if err := requireDir(p.MesaDir, "MESA directory"); err != nil {
		return err
	}
	if err := requireDir(p.ModelDir, "model path"); err != nil {
		return err
	}
	if err := CheckVersion(p.MesaDir); err != nil {
		return err
	}
	if err := CheckMass(p.InitialMass); err != nil {
		return err
	}
	return CheckMetallicity(p.InitialZ)
}

func requireDir(path, what string) error {
	if path == "" {
		return fmt.Errorf("%w: %s not set", ErrMissingDirectory, what)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: could not find %s: %s", ErrMissingDirectory, what, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory: %s", ErrMissingDirectory, what, path)
	}
	return nil
}

// ReadVersion returns the trimmed content of the installation's version marker.
func ReadVersion(mesaDir string) (string, error) {
	data, err := os.ReadFile(VersionFile(mesaDir))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// CheckVersion fails unless the installation is SupportedVersion.
func CheckVersion(mesaDir string) error {
	version, err := ReadVersion(mesaDir)
	if err != nil {
		return fmt.Errorf("%w: reading version marker: %w", ErrUnsupportedVersion, err)
	}
	if version != SupportedVersion {
		return fmt.Errorf("%w: MESA version %s is not supported. Must be %s",
			ErrUnsupportedVersion, version, SupportedVersion)
	}
	return nil
}

// CheckMass fails unless mass is a positive, finite number.
func CheckMass(mass float64) error {
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return fmt.Errorf("%w: initial mass %v is not valid. Must be positive", ErrInvalidMass, mass)
	}
	return nil
}

// CheckMetallicity fails unless 0 <= z <= MaxMetallicity.
func CheckMetallicity(z float64) error {
	if math.IsNaN(z) || z < 0 || z > MaxMetallicity {
		return fmt.Errorf("%w: initial Z %v is not valid. Must be between 0 and %v",
			ErrInvalidMetallicity, z, MaxMetallicity)
	}
	return nil
}
