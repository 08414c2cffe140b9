package global

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool

	// ApiAddress is the base url of the daemon used by remote commands
	ApiAddress string
)

// Version is set at build time
var Version = "dev"
