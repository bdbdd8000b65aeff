package cfg

type Cfg struct {
	// Site configuration
	ConfigFile string
	DBPath     string

	// Server configuration
	Serve           bool
	Port            string
	RebuildInterval int
	WorkerCount     int
	APIAccessKey    string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
