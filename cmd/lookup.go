/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eslkit/vocadeck/internal/app"
)

// lookupCmd queries the AI lookup service for a word record.
var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Generate a word record via the AI lookup service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentence, _ := cmd.Flags().GetString("sentence")
		base, _ := cmd.Flags().GetBool("base-form")

		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if base {
			info, err := container.Lookup.IdentifyBaseForm(cmd.Context(), args[0], sentence)
			if err != nil {
				return err
			}
			return enc.Encode(info)
		}

		word, err := container.Lookup.GenerateWord(cmd.Context(), args[0], sentence)
		if err != nil {
			return err
		}
		return enc.Encode(word)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().String("sentence", "", "sentence context for sense disambiguation")
	lookupCmd.Flags().Bool("base-form", false, "identify the base form instead of generating a record")
}
