package main

import (
	"fmt"
	"os"

	"github.com/example/go-lyric-tokenizer/internal/vocabfetch"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Vocabulary file management",
	}

	cmd.AddCommand(newVocabFetchCmd())

	return cmd
}

func newVocabFetchCmd() *cobra.Command {
	var opts vocabfetch.Options

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a vocabulary file from a Hugging Face repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.HFToken == "" {
				opts.HFToken = os.Getenv("HF_TOKEN")
			}
			opts.Stdout = cmd.OutOrStdout()

			path, err := vocabfetch.Fetch(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "vocabulary ready: %s\n", path)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.Repo, "repo", "", "Hugging Face repository, e.g. org/name (required)")
	cmd.Flags().StringVar(&opts.Filename, "file", "vocab.json", "File path inside the repository")
	cmd.Flags().StringVar(&opts.Revision, "revision", "main", "Branch, tag or commit")
	cmd.Flags().StringVar(&opts.SHA256, "sha256", "", "Expected checksum; resolved from the hub when empty")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "models", "Directory to write the file to")
	cmd.Flags().StringVar(&opts.HFToken, "hf-token", "", "Hugging Face token (default $HF_TOKEN)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", vocabfetch.DefaultBaseURL, "Hub base URL")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}
