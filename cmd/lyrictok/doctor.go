package main

import (
	"errors"
	"fmt"

	"github.com/example/go-lyric-tokenizer/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the configured vocabulary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "vocab format: %s\n", cfg.Paths.VocabFormat)

			result := doctor.Run(doctor.Config{
				VocabPath:   cfg.Paths.VocabPath,
				VocabFormat: cfg.Paths.VocabFormat,
				Sample:      sample,
			}, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringVar(&sample, "sample", doctor.DefaultSample, "Lyric used for the round-trip check")

	return cmd
}
