package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// Archive moves saved games to and from standalone files
type Archive interface {
	Export(gameID, path string) error
	Import(path, gameID string) (string, error)
	Backup(path string) error
}

// ArchiveOpts names the archive tasks to run. Empty fields are skipped.
type ArchiveOpts struct {
	// Export is the id of a saved game to write to To
	Export string
	To     string
	// Import is a file written by Export; As optionally renames the game
	Import string
	As     string
	// Backup is where to copy the whole saved games file
	Backup string
}

func (o ArchiveOpts) empty() bool {
	return o.Export == "" && o.Import == "" && o.Backup == ""
}

// RunArchive runs the requested tasks in the order export, import, backup.
// It reports whether there was anything to do.
func RunArchive(a Archive, opts ArchiveOpts, out io.Writer) (bool, error) {
	if opts.empty() {
		return false, nil
	}

	if opts.Export != "" {
		if opts.To == "" {
			return true, fmt.Errorf("%w: export needs a target file", ErrBadArguments)
		}
		if err := a.Export(opts.Export, opts.To); err != nil {
			return true, err
		}
		io.WriteString(out, pterm.Success.Sprintfln("Exported %s to %s", opts.Export, opts.To))
	}

	if opts.Import != "" {
		gameID, err := a.Import(opts.Import, opts.As)
		if err != nil {
			return true, err
		}
		io.WriteString(out, pterm.Success.Sprintfln("Imported %s as %s", opts.Import, gameID))
	}

	if opts.Backup != "" {
		if err := a.Backup(opts.Backup); err != nil {
			return true, err
		}
		io.WriteString(out, pterm.Success.Sprintfln("Backed up saved games to %s", opts.Backup))
	}

	return true, nil
}
