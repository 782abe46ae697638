package main

import (
	"fmt"

	"github.com/example/go-lyric-tokenizer/internal/numeral"
	"github.com/spf13/cobra"
)

func newNumeralCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numeral",
		Short: "Spell numbers in Hinglish words",
	}

	cmd.AddCommand(numeralSubcommand("cardinal <digits>", "Spell an integer (Indian grouping)", numeral.CardinalString))
	cmd.AddCommand(numeralSubcommand("decimal <number>", "Spell a decimal number", numeral.Decimal))
	cmd.AddCommand(numeralSubcommand("ordinal <rank>", "Spell an ordinal such as 22nd", numeral.Ordinal))
	cmd.AddCommand(newCurrencyCmd())

	return cmd
}

func numeralSubcommand(use, short string, spell func(string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := spell(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newCurrencyCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "currency <amount>",
		Short: "Spell a currency amount such as ₹1234.56",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := numeral.Currency(args[0], code)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Currency code (INR|USD|GBP); inferred from the symbol when empty")

	return cmd
}
