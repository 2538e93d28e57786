package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/definepage/pkg/definepage"
)

// NewTransformCommand creates the transform command.
func NewTransformCommand() *cobra.Command {
	var (
		mode    string
		id      string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "transform <file>",
		Short: "Run the macro transform on a page component",
		Long: `Run the macro transform on a single page component and print the result.

In strip mode the macro call is erased and every other byte of the
component is kept. In isolate mode the component is reduced to a module
that default-exports the macro's configuration object.

With --mode auto (the default) the mode follows the module id: ids whose
query string carries the macro name as a key (Page.vue?definePage&vue)
are isolated, everything else is stripped.

Components without a macro call are printed unchanged. Use "-" to read
from stdin.

With --sourcemap, isolate output on stdout ends with an inline source map
comment. A stripped component is still a component rather than a script,
so its map is only written with --out (as <out>.map).`,
		Example: `  # Strip the macro call
  definepage transform src/pages/users/[id].vue --mode strip

  # Extract the route configuration module
  definepage transform src/pages/users/[id].vue --mode isolate

  # Let the module id select the mode
  definepage transform Page.vue --id 'Page.vue?definePage&vue'

  # Write the result and a source map next to it
  definepage transform Page.vue --mode isolate --sourcemap --out page.route.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], mode, id, outPath)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "auto", "Transform mode (auto|strip|isolate)")
	cmd.Flags().StringVar(&id, "id", "", "Module id used for mode selection and messages (default: the file path)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the result to a file instead of stdout")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "strip", "isolate"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTransform(cmd *cobra.Command, file, modeName, id, outPath string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	code, err := readSource(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	if id == "" {
		id = file
	}
	doc := definepage.Document{ID: id, Code: string(code)}

	var res *definepage.Result
	if modeName == "auto" {
		res, err = cmdCtx.Transformer.TransformID(doc)
	} else {
		mode, ok := definepage.ParseMode(modeName)
		if !ok {
			return fmt.Errorf("unknown mode %q (expected auto, strip or isolate)", modeName)
		}
		res, err = cmdCtx.Transformer.Transform(doc, mode)
	}
	if err != nil {
		return err
	}

	output := doc.Code
	if res == nil {
		cmdCtx.Logger.Debug("no macro call, passing through", "file", id, "macro", cmdCtx.Transformer.Macro())
	} else {
		output = res.Code
	}

	if outPath == "" {
		if res != nil && res.Map != nil {
			if res.Mode != definepage.ModeIsolate {
				cmdCtx.Logger.Debug("source map not inlined into component output, use --out to write it", "file", id)
			} else {
				comment, err := res.Map.Comment()
				if err != nil {
					return fmt.Errorf("failed to encode source map: %w", err)
				}
				output += "\n" + comment
			}
		}
		_, err = io.WriteString(cmd.OutOrStdout(), output)
		return err
	}

	if err := os.WriteFile(outPath, []byte(output), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if res != nil && res.Map != nil {
		data, err := res.Map.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode source map: %w", err)
		}
		if err := os.WriteFile(outPath+".map", data, 0o600); err != nil {
			return fmt.Errorf("failed to write source map: %w", err)
		}
	}
	cmdCtx.Logger.Info("wrote transform result", "file", outPath)
	return nil
}

func readSource(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		code, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return code, nil
	}
	code, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return code, nil
}
