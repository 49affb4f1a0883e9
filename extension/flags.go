// flags.go names the command flags shared between definitions and lookups,
// so a renamed flag breaks the build instead of silently reading false.

package extension

const (
	// Boolean flags

	FlagDiff      = "diff"       // Show only what a rewrite changes
	FlagDryRun    = "dry-run"    // Preview without making changes
	FlagLocal     = "local"      // Use the project config only
	FlagNoDoctype = "no-doctype" // Remove the DOCTYPE before validating
	FlagRemove    = "remove"     // Remove the DOCTYPE instead of replacing it
	FlagText      = "text"       // Print the result instead of writing a file
	FlagWrite     = "write"      // Write a rewrite back to the file

	// String flags

	FlagDoctype   = "doctype"    // DOCTYPE declaration to validate against
	FlagJarDir    = "jar-dir"    // Directory holding the tool jars
	FlagOlderThan = "older-than" // Age threshold for vacuum
	FlagOut       = "out"        // Report file or directory
	FlagSet       = "set"        // DOCTYPE declaration to set

	// Integer flags

	FlagLimit = "limit" // Number of log entries
)
