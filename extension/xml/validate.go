// validate.go implements the "xmlkit validate" command.
//
// Separated from transform.go because validation carries the DOCTYPE
// override flags and batch handling: several documents can be checked in one
// call, each leaving its own report.
//
// Design: Documents are validated one after another. A document that cannot
// be opened is recorded and the batch carries on; the command exits 1 if
// any document failed for any reason.

package xml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/progress"
	"github.com/jpl-au/xmlkit/internal/report"
	"github.com/jpl-au/xmlkit/internal/validate"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// reportExt is appended to a document's base name to name its report.
const reportExt = ".rep"

// validateResult is the JSON shape of one validated document.
type validateResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

func (e *Extension) newValidateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate <xml>...",
		Short: "Validate documents against their DTD",
		Long: `Validate documents with the DTD checker and write a report for each.

  xmlkit validate article.xml                      # report: article.rep
  xmlkit validate article.xml -O reports/a.rep
  xmlkit validate *.xml -O reports/                # one report per document
  xmlkit validate article.xml --doctype '<!DOCTYPE article SYSTEM "journal.dtd">'
  xmlkit validate article.xml --no-doctype         # well-formedness only

The DOCTYPE override only lasts for the run: the document is put back
byte for byte afterwards. A report that contains "ERROR" means the
document is invalid, and the command exits 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runValidate,
	}
	c.Flags().StringP(extension.FlagOut, "O", "", "Report file, or directory for one report per document")
	c.Flags().String(extension.FlagDoctype, "", "Replace the DOCTYPE declaration while validating")
	c.Flags().Bool(extension.FlagNoDoctype, false, "Remove the DOCTYPE declaration (check well-formedness only)")
	c.MarkFlagsMutuallyExclusive(extension.FlagDoctype, extension.FlagNoDoctype)
	return c
}

func (e *Extension) runValidate(c *cobra.Command, args []string) error {
	out, _ := c.Flags().GetString(extension.FlagOut)
	decl, _ := c.Flags().GetString(extension.FlagDoctype)
	noDoctype, _ := c.Flags().GetBool(extension.FlagNoDoctype)

	override, err := overrideFlags(decl, c.Flags().Changed(extension.FlagDoctype), noDoctype)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("validate: %w", err))
	}

	for _, p := range args {
		if err := validate.Path(p); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("validate: %w", err))
		}
	}

	if len(args) == 1 {
		return e.validateOne(c, args[0], reportPath(args[0], out, false), override)
	}
	reports, err := batchReports(args, out)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("validate: %w", err))
	}
	if out != "" {
		if err := os.MkdirAll(out, 0755); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("create report directory: %w", err))
		}
	}
	return e.validateMany(c, args, reports, override)
}

func (e *Extension) validateOne(c *cobra.Command, xml, rep string, override doctype.Override) error {
	ok, err := progress.Spin("Validating", func() (bool, error) {
		return e.tk.Validate(c.Context(), xml, rep, override)
	})
	logValidate(xml, rep, override, ok, err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("validate %q: %w", xml, err))
	}

	if cmd.JSON() {
		if err := cmd.PrintJSON(validateResult{Input: xml, Output: rep, Valid: ok}); err != nil {
			return err
		}
	} else {
		text, _ := os.ReadFile(rep)
		styled := term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprint(cmd.Out(), report.Render(string(text), ok, styled))
	}
	if !ok {
		return cmd.Failed(c)
	}
	return nil
}

func (e *Extension) validateMany(c *cobra.Command, inputs, reports []string, override doctype.Override) error {
	results := make([]validateResult, 0, len(inputs))
	failed := false

	p := progress.New("Validating", len(inputs))
	for i, xml := range inputs {
		rep := reports[i]
		ok, err := e.tk.Validate(c.Context(), xml, rep, override)
		logValidate(xml, rep, override, ok, err)

		r := validateResult{Input: xml, Output: rep, Valid: ok}
		if err != nil {
			r.Error = err.Error()
		}
		failed = failed || !ok
		results = append(results, r)

		p.Step(xml)
		if c.Context().Err() != nil {
			break
		}
	}
	p.Done()

	if cmd.JSON() {
		if err := cmd.PrintJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			switch {
			case r.Error != "":
				fmt.Fprintf(cmd.Out(), "error  %s: %s\n", r.Input, r.Error)
			case r.Valid:
				fmt.Fprintf(cmd.Out(), "valid  %s\n", r.Input)
			default:
				fmt.Fprintf(cmd.Out(), "FAIL   %s -> %s\n", r.Input, r.Output)
			}
		}
	}
	if failed {
		return cmd.Failed(c)
	}
	return nil
}

func logValidate(xml, rep string, override doctype.Override, ok bool, err error) {
	log.Event("xml:validate", "validate").
		Path(xml).
		Output(rep).
		Detail("doctype", override.String()).
		Valid(ok).
		Write(err)
}

// reportPath names the report for xml. Without out the report sits next to
// the document; with many documents, or when out is an existing directory,
// it goes inside out.
func reportPath(xml, out string, many bool) string {
	base := strings.TrimSuffix(filepath.Base(xml), filepath.Ext(xml)) + reportExt
	if out == "" {
		return filepath.Join(filepath.Dir(xml), base)
	}
	if many {
		return filepath.Join(out, base)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, base)
	}
	return out
}

// batchReports names the report of every input. Two inputs that would write
// the same report are rejected before anything runs, rather than letting the
// second overwrite the first.
func batchReports(inputs []string, out string) ([]string, error) {
	reports := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, xml := range inputs {
		rep := reportPath(xml, out, true)
		key := filepath.Clean(rep)
		if prev, dup := owner[key]; dup {
			return nil, fmt.Errorf("%s and %s would both write report %s", prev, xml, rep)
		}
		owner[key] = xml
		reports[i] = rep
	}
	return reports, nil
}

// overrideFlags turns --doctype/--no-doctype into an override.
func overrideFlags(decl string, declSet, remove bool) (doctype.Override, error) {
	switch {
	case remove:
		return doctype.Remove(), nil
	case declSet:
		decl = strings.TrimSpace(decl)
		if err := validate.Doctype(decl); err != nil {
			return doctype.Keep(), err
		}
		return doctype.Parse(decl, true), nil
	default:
		return doctype.Keep(), nil
	}
}
