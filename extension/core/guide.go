// guide.go implements `xmlkit guide`. Pages are rendered with glamour on a
// terminal and printed as raw markdown otherwise, which is what an LLM
// loading the guide into context wants.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the xmlkit usage guide",
		Long: `Outputs the xmlkit guide for LLMs and humans.

  xmlkit guide             # main guide
  xmlkit guide validate    # validation and doctype overrides
  xmlkit guide install     # installing Java and the tool jars`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			printMarkdown(content)
			return nil
		},
	}
}

// printMarkdown renders content with glamour on a terminal and writes it
// raw otherwise.
func printMarkdown(content string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(content, "dark")
		if err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return
		}
	}
	fmt.Fprint(cmd.Out(), content)
}
