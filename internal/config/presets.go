package config

var Presets = map[string]map[string]*Config{
	"brusselator": {
		"limit_cycle": {
			Problem: "brusselator", Method: "RADAU_IIA_32", T1: 50.0,
			Tolerance: 1e-6,
		},
		"long": {
			Problem: "brusselator", Method: "RADAU_IIA_54", T1: 1e4,
			Tolerance: 1e-8,
		},
		"explicit": {
			Problem: "brusselator", Method: "DORMAND_PRINCE_54", T1: 50.0,
			Tolerance: 1e-6,
		},
	},
	"vanderpol": {
		"stiff": {
			Problem: "vanderpol", Method: "RADAU_IIA_54", T1: 20.0,
			Tolerance: 1e-8,
		},
		"mild": {
			Problem: "vanderpol", Method: "CASH_KARP_54", T1: 20.0,
			Tolerance: 1e-6,
		},
	},
	"decay": {
		"quick": {
			Problem: "decay", Method: "RUNGE_KUTTA_4", T1: 5.0, DT: 0.05,
		},
		"reference": {
			Problem: "decay", Method: "GAUSS_LEGENDRE_63", T1: 5.0, DT: 0.01,
		},
	},
}

func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	return names
}
