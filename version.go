package dateq

import _ "embed"

// Version is the dateq release version, embedded from the VERSION file
// at the repository root. It carries a trailing newline; display code
// should strings.TrimSpace it.
//
//go:embed VERSION
var Version string
