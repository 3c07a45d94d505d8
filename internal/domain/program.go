package domain

type ProgramFormat string

const (
	FormatPyquil  ProgramFormat = "pyquil"
	FormatQiskit  ProgramFormat = "qiskit"
	FormatToaster ProgramFormat = "toaster"
)

// TranslateHints carries backend selection details the compiler needs.
type TranslateHints struct {
	Lattice     string
	AsQVM       bool
	Provider    string
	BackendName string
}

type ListStyle string

const (
	ListStyleLines  ListStyle = "lines"
	ListStyleQuoted ListStyle = "quoted"
)

// Profile holds the command lines used to probe, inspect and run each backend.
type Profile struct {
	Toaster    ToasterProfile
	Python     PythonProfile
	Rigetti    RigettiProfile
	Translator TranslatorProfile
}

type ToasterProfile struct {
	Binary      string
	VersionFlag string
	RunCommand  string
}

type PythonProfile struct {
	Executable string
	ListStyle  ListStyle
}

type RigettiProfile struct {
	CLI                 string
	LatticesCommand     string
	ReservationsCommand string
}

type TranslatorProfile struct {
	Command string
}

func DefaultProfile() Profile {
	return Profile{
		Toaster: ToasterProfile{
			Binary:      "qubit-toaster",
			VersionFlag: "-v",
			RunCommand:  "qubit-toaster -",
		},
		Python: PythonProfile{
			Executable: "python",
			ListStyle:  ListStyleLines,
		},
		Rigetti: RigettiProfile{
			CLI:                 "qcs",
			LatticesCommand:     "qcs lattices",
			ReservationsCommand: "qcs reservations",
		},
	}
}

// ScriptCommand is the command line that runs a python script fed on stdin.
func (p PythonProfile) ScriptCommand() string {
	return p.Executable + " -"
}

func (l ListStyle) Valid() bool {
	return l == ListStyleLines || l == ListStyleQuoted
}
