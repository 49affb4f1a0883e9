// llm.go implements `xmlkit llm`: the guide/llm.md page, which lists the
// MCP tools and the CLI calls an assistant needs.

package core

import (
	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/guide"
	"github.com/spf13/cobra"
)

func newLlmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "llm",
		Short: "Getting started guide for LLMs",
		Long:  `Quick reference for LLMs to discover available commands and usage patterns.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			content, err := guide.Get("llm")
			if err != nil {
				return cmd.PrintJSONError(err)
			}
			printMarkdown(content)
			return nil
		},
	}
}
