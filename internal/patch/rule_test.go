package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyLine(t *testing.T) {
	rules := []Rule{NewRule(`initial_mass = .*`, "initial_mass = 2.00d0")}

	assert.Equal(t, "initial_mass = 2.00d0", ApplyLine("initial_mass = 1.00d0", rules))
	assert.Equal(t, "    initial_mass = 2.00d0\n", ApplyLine("    initial_mass = 1.00d0\n", rules))
	assert.Equal(t, "initial_z = 0.02d0\n", ApplyLine("initial_z = 0.02d0\n", rules))
}

func TestApplyLine_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		NewRule(`alpha`, "ALPHA"),
		NewRule(`ALPHA`, "never"),
		NewRule(`beta`, "BETA"),
	}

	// Only the first rule runs, even though the third also matches
	assert.Equal(t, "ALPHA beta", ApplyLine("alpha beta", rules))
	assert.Equal(t, "BETA", ApplyLine("beta", rules))
}

func TestApplyLine_ReplacesEveryMatch(t *testing.T) {
	rules := []Rule{NewRule(`#do_one inlist_`, "do_one inlist_")}
	assert.Equal(t,
		"do_one inlist_a; do_one inlist_b",
		ApplyLine("#do_one inlist_a; #do_one inlist_b", rules))
}

func TestApplyLine_KeepsTerminators(t *testing.T) {
	rules := []Rule{NewRule(`x = .*`, "x = 2")}

	assert.Equal(t, "x = 2\r\n", ApplyLine("x = 1\r\n", rules))
	assert.Equal(t, "x = 2\n", ApplyLine("x = 1\n", rules))
	assert.Equal(t, "x = 2", ApplyLine("x = 1", rules))
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	lines := []string{"a = 1\n", "b = 1\n"}
	got := Apply(lines, []Rule{NewRule(`a = .*`, "a = 2")})

	assert.Equal(t, []string{"a = 2\n", "b = 1\n"}, got)
	assert.Equal(t, []string{"a = 1\n", "b = 1\n"}, lines)
}

func TestLiteral(t *testing.T) {
	rules := []Rule{NewRule(`MESA_DIR = .*`, "MESA_DIR = "+Literal("/home/$USER/mesa"))}
	assert.Equal(t, "MESA_DIR = /home/$USER/mesa", ApplyLine("MESA_DIR = /opt/mesa", rules))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a\r\n", "b"}, SplitLines("a\r\nb"))
	assert.Equal(t, []string{"\n", "\n"}, SplitLines("\n\n"))
}

func TestModelRules(t *testing.T) {
	rules := ModelRules("/opt/mesa-15140", 2, 0.014)

	tests := []struct {
		in   string
		want string
	}{
		{"MESA_DIR = ../../..", "MESA_DIR = /opt/mesa-15140"},
		{"      mesa_dir = '../../..'", "      mesa_dir = '/opt/mesa-15140'"},
		{"      initial_mass = 1.00", "      initial_mass = 2.00"},
		{"      initial_z = 0.02d0", "      initial_z = 0.014d0"},
		{"      !pgstar_flag = .true.", "      pgstar_flag = .true."},
		{"#do_one inlist_to_zams_header zams", "do_one inlist_to_zams_header zams"},
		{"#cp start_he_core_flash_mode", "cp start_he_core_flash_mode"},
		{"      max_model_number = 2000", "      ! max_model_number = 2000"},
		{"      ! max_model_number = 2000", "      ! max_model_number = 2000"},
		{"      history_interval = 1", "      history_interval = 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ApplyLine(tt.in, rules), "line %q", tt.in)
	}
}

func TestModelRules_CleansMesaDir(t *testing.T) {
	rules := ModelRules("/opt/mesa/", 1, 0.02)

	assert.Equal(t, "MESA_DIR = /opt/mesa", ApplyLine("MESA_DIR = ../../..", rules))
	assert.Equal(t, "      mesa_dir = '/opt/mesa'", ApplyLine("      mesa_dir = ''", rules))
}

func TestModelRules_Idempotent(t *testing.T) {
	lines := []string{
		"MESA_DIR = ../../..\n",
		"      mesa_dir = '../../..'\n",
		"      initial_mass = 1.00\n",
		"      initial_z = 0.02d0\n",
		"      !pgstar_flag = .true.\n",
		"#do_one inlist_to_zams_header zams\n",
		"      max_model_number = 2000\n",
	}
	rules := ModelRules("/opt/mesa", 3.5, 0.001)

	once := Apply(lines, rules)
	twice := Apply(once, rules)
	assert.Equal(t, once, twice)
}

func TestStartRules(t *testing.T) {
	lines := []string{
		"      required_termination_code_string = 'log_L_lower_limit'\n",
		"      log_L_lower_limit = -1\n",
		"      Lnuc_div_L_zams_limit = 0.99d0\n",
	}

	once := Apply(lines, StartRules())
	assert.Equal(t, []string{
		"      required_termination_code_string = 'power_h_burn_upper_limit'\n",
		"      power_h_burn_upper_limit = 0.001\n",
		"      Lnuc_div_L_zams_limit = 0.99d0\n",
	}, once)
	assert.Equal(t, once, Apply(once, StartRules()))
}
