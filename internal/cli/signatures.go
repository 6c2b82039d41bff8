package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-skeleton/internal/skeleton"
)

var signaturesLangFlag string

// signaturesCmd prints the signature tree of one file as JSON
var signaturesCmd = &cobra.Command{
	Use:   "signatures FILE",
	Short: "Print the signature tree of a source file as JSON",
	Long: `Print the signature tree of a Java or Python source file as JSON.

Each entity carries its kind, name, signature text and location, with nested
entities under "children".

Example:
  skeleton signatures src/main/java/App.java | jq '.[].name'`,
	Args: cobra.ExactArgs(1),
	RunE: runSignatures,
}

func init() {
	rootCmd.AddCommand(signaturesCmd)
	signaturesCmd.Flags().StringVarP(&signaturesLangFlag, "lang", "l", "", "source language (java, python)")
}

func runSignatures(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return executeSignatures(cmd.Context(), a.service, args[0], signaturesLangFlag, cmd.OutOrStdout())
}

// executeSignatures writes the forest of path as indented JSON.
func executeSignatures(ctx context.Context, service *skeleton.Service, path, language string, out io.Writer) error {
	forest, err := service.Signatures(ctx, path, language)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(forest)
}
