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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslkit/vocadeck/internal/app"
	"github.com/eslkit/vocadeck/internal/usecase"
)

// deckCmd groups custom deck management subcommands.
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage custom decks",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		uc, cleanup, err := deckUsecase()
		if err != nil {
			return err
		}
		defer cleanup()

		decks, err := uc.ListCustomDecks(cmd.Context())
		if err != nil {
			return err
		}
		if len(decks) == 0 {
			fmt.Println("no custom decks")
			return nil
		}
		for _, d := range decks {
			fmt.Printf("%s\t%s\t%d words\n", d.ID, d.Name, len(d.WordList))
		}
		return nil
	},
}

var deckCreateCmd = &cobra.Command{
	Use:   "create [words...]",
	Short: "Create a custom deck from a word list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		uc, cleanup, err := deckUsecase()
		if err != nil {
			return err
		}
		defer cleanup()

		deck, rejected, err := uc.CreateCustomDeck(cmd.Context(), name, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s) with %d words\n", deck.ID, deck.Name, len(deck.WordList))
		if len(rejected) > 0 {
			fmt.Fprintf(os.Stderr, "not in catalog: %s\n", strings.Join(rejected, ", "))
		}
		return nil
	},
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a custom deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uc, cleanup, err := deckUsecase()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := uc.DeleteDeck(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func deckUsecase() (usecase.DeckUsecase, func(), error) {
	container, cleanup, err := app.Initialize()
	if err != nil {
		return nil, nil, fmt.Errorf("initialize: %w", err)
	}
	return container.Decks, cleanup, nil
}

func init() {
	rootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckDeleteCmd)

	deckCreateCmd.Flags().String("name", "", "deck name (defaults to a dated name)")
}
