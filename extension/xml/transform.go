// transform.go implements the "xmlkit transform" command.
//
// Design: Without --text the result goes to a file and every run leaves one
// there: the processor's output, or a report saying why there is none. With
// --text the document is transformed through a scratch file and the result
// printed, which is how stylesheets that extract values are used. "-" reads
// the document from stdin.

package xml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/progress"
	"github.com/jpl-au/xmlkit/internal/validate"
	"github.com/spf13/cobra"
)

// transformResult is the JSON shape of a transform run.
type transformResult struct {
	Input      string `json:"input"`
	Stylesheet string `json:"stylesheet"`
	Output     string `json:"output,omitempty"`
	Text       string `json:"text,omitempty"`
	OK         bool   `json:"ok"`
}

func (e *Extension) newTransformCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "transform <xml> <xsl> <output> [name=value...]",
		Short: "Transform a document with an XSLT stylesheet",
		Long: `Transform a document with an XSLT stylesheet.

  xmlkit transform article.xml html.xsl out/article.html
  xmlkit transform article.xml html.xsl out/article.html lang=en
  xmlkit transform --text article.xml title.xsl
  cat article.xml | xmlkit transform --text - title.xsl

The output file always exists afterwards. When the processor produces
nothing it holds a report starting with "ERROR:" and the command exits 1.`,
		Args: cobra.MinimumNArgs(2),
		RunE: e.runTransform,
	}
	c.Flags().Bool(extension.FlagText, false, "Print the result instead of writing a file")
	return c
}

func (e *Extension) runTransform(c *cobra.Command, args []string) error {
	text, _ := c.Flags().GetBool(extension.FlagText)
	if text {
		return e.transformText(c, args)
	}
	if len(args) < 3 {
		return cmd.PrintJSONError(errors.New("transform: output path required (or use --text)"))
	}

	xml, xsl, output := args[0], args[1], args[2]
	for _, p := range []string{xml, xsl, output} {
		if err := validate.Path(p); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("transform: %w", err))
		}
	}
	params, bad := invoke.ParseParams(args[3:])
	if len(bad) > 0 {
		return cmd.PrintJSONError(fmt.Errorf("transform: parameters must be name=value: %s", strings.Join(bad, ", ")))
	}
	if err := params.Validate(); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("transform: %w", err))
	}

	ok, err := progress.Spin("Transforming", func() (bool, error) {
		return e.tk.Transform(c.Context(), xml, xsl, output, params)
	})

	log.Event("xml:transform", "transform").
		Path(xml).
		Output(output).
		Detail("stylesheet", xsl).
		Detail("params", params.Format()).
		Valid(ok).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("transform %q: %w", xml, err))
	}

	if cmd.JSON() {
		if err := cmd.PrintJSON(transformResult{Input: xml, Stylesheet: xsl, Output: output, OK: ok}); err != nil {
			return err
		}
	} else if ok {
		fmt.Fprintf(cmd.Out(), "Wrote %s\n", output)
	} else {
		fmt.Fprintf(cmd.Out(), "Transform failed, report written to %s\n", output)
	}
	if !ok {
		return cmd.Failed(c)
	}
	return nil
}

func (e *Extension) transformText(c *cobra.Command, args []string) error {
	if len(args) != 2 {
		return cmd.PrintJSONError(errors.New("transform --text takes <xml> <xsl> and no parameters"))
	}
	xml, xsl := args[0], args[1]
	if err := validate.Path(xsl); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("transform: %w", err))
	}

	input, path := xml, xml
	if xml == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		input, path = string(data), ""
		if err := validate.Content(input, 0); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("transform: %w", err))
		}
	} else if err := validate.Path(xml); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("transform: %w", err))
	}

	result, err := progress.Spin("Transforming", func() (string, error) {
		return e.tk.TransformContent(c.Context(), input, xsl)
	})
	ok := result != ""

	log.Event("xml:transform", "transform").
		Path(path).
		Detail("stylesheet", xsl).
		Detail("text", true).
		Valid(ok).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("transform %q: %w", xml, err))
	}

	if cmd.JSON() {
		if err := cmd.PrintJSON(transformResult{Input: path, Stylesheet: xsl, Text: result, OK: ok}); err != nil {
			return err
		}
	} else if ok {
		fmt.Fprint(cmd.Out(), result)
	} else {
		fmt.Fprintln(os.Stderr, "transform produced no output")
	}
	if !ok {
		return cmd.Failed(c)
	}
	return nil
}
