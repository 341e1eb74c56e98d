package enzyme

// Canonical names of the built-in enzymes.
const (
	Trypsin      = "trypsin"
	TrypsinP     = "trypsin/p"
	LysC         = "lys-c"
	LysN         = "lys-n"
	ArgC         = "arg-c"
	AspN         = "asp-n"
	GluC         = "glu-c"
	Chymotrypsin = "chymotrypsin"
	Unspecific   = "unspecific"
)

// Presets returns the built-in enzymes.
func Presets() []Enzyme {
	return []Enzyme{
		New(Trypsin, "C-terminal to K or R, not before P", "KR", "P", ""),
		New(TrypsinP, "C-terminal to K or R, also before P", "KR", "", "", "trypsin-p"),
		New(LysC, "C-terminal to K", "K", "", "", "lysc", "lys_c"),
		New(LysN, "N-terminal to K", "", "", "K", "lysn", "lys_n"),
		New(ArgC, "C-terminal to R, not before P", "R", "P", "", "argc", "arg_c"),
		New(AspN, "N-terminal to D", "", "", "D", "aspn", "asp_n"),
		New(GluC, "C-terminal to E", "E", "", "", "gluc", "glu_c", "v8"),
		New(Chymotrypsin, "C-terminal to F, W or Y, not before P", "FWY", "P", ""),
		New(Unspecific, "no cleavage sites; pair with digestion mode none", "", "", "", "nonspecific", "none"),
	}
}

//nolint:gochecknoinits // Presets register themselves like built-in rules.
func init() {
	for _, e := range Presets() {
		DefaultRegistry.Register(e)
	}
}
