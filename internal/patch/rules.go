package patch

import (
	"path/filepath"

	"github.com/simonhull/firebird-suite/starling/internal/mesa"
)

// ModelRules are applied to every target file. They point the model at
// mesaDir, set the initial mass and metallicity, and flip the comment
// markers the course models ship with. mesaDir is written cleaned, so
// "/opt/mesa/" becomes "/opt/mesa".
func ModelRules(mesaDir string, mass, z float64) []Rule {
	dir := Literal(filepath.Clean(mesaDir))
	return []Rule{
		NewRule(`MESA_DIR = .*`, "MESA_DIR = "+dir),
		NewRule(`mesa_dir = .*`, "mesa_dir = '"+dir+"'"),
		NewRule(`initial_mass = .*`, "initial_mass = "+Literal(mesa.FormatMass(mass))),
		NewRule(`initial_z = .*`, "initial_z = "+Literal(mesa.FormatMetallicity(z))),
		NewRule(`!pgstar_flag`, "pgstar_flag"),
		NewRule(`#do_one inlist_`, "do_one inlist_"),
		NewRule(`#cp start_he_core_flash_mode`, "cp start_he_core_flash_mode"),
		NewRule(`^(\s*)max_model_number`, "${1}! max_model_number"),
	}
}

// StartRules switch the pre-main-sequence stop condition in inlist_start
// from a luminosity floor to hydrogen burning power.
func StartRules() []Rule {
	return []Rule{
		NewRule(`required_termination_code_string = 'log_L_lower_limit'`,
			"required_termination_code_string = 'power_h_burn_upper_limit'"),
		NewRule(`log_L_lower_limit .*`, "power_h_burn_upper_limit = 0.001"),
	}
}
