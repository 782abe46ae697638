package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-lyric-tokenizer/internal/text"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Print the canonical form of lyric text",
		Long: "Runs the rewrite pipeline over the arguments (or stdin) and prints the result.\n" +
			"--stage stops after preclean or codemix instead of running the full pipeline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := text.ParseStage(stage)
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := text.NewPipeline(slog.Default()).RunTo(raw, st)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&stage, "stage", string(text.StageFull), "Last stage to run: preclean|codemix|full")

	return cmd
}
