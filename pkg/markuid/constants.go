package markuid

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // All files processed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitCheckFailed      = 20 // Check found missing or duplicate identifiers
	ExitProcessingFailed = 21 // At least one file could not be processed
)

const (
	// DefaultNamespace is the reserved namespace the identifier attribute lives in.
	DefaultNamespace = "http://schemas.microsoft.com/winfx/2006/xaml"

	// DefaultAttribute is the local name of the identifier attribute.
	DefaultAttribute = "Uid"

	// DefaultNameAttribute is the local name of the friendly-name attribute whose
	// value is preferred when a new identifier has to be chosen.
	DefaultNameAttribute = "Name"

	// DefaultPrefix is the first prefix tried when the reserved namespace has to be
	// declared on the root element. Later candidates append 1, 2, 3, ...
	DefaultPrefix = "x"

	// DefaultSeparator joins an element name and its sequence number ("Button_3").
	DefaultSeparator = "_"

	// DefaultFallbackSequence names the sequence used once an element's own
	// sequence is exhausted.
	DefaultFallbackSequence = "_Uid"

	// DefaultIntermediateDir holds temporary and backup files during a run.
	// Relative values are resolved against the project root.
	DefaultIntermediateDir = "obj/markuid"

	// DefaultWorkers is the number of files processed concurrently.
	DefaultWorkers = 4

	// ConfigFileName is the project configuration file looked up in the project root.
	ConfigFileName = "markuid.yaml"
)

// DefaultInclude lists the glob patterns used to discover markup files when a
// directory is given and no configuration overrides it.
var DefaultInclude = []string{"**/*.xaml"}

// DefaultExclude lists glob patterns skipped during discovery.
var DefaultExclude = []string{"bin/**", "obj/**", "**/.git/**"}
