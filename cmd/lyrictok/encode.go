package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/go-lyric-tokenizer/internal/text"
	"github.com/spf13/cobra"
)

type encodeOutput struct {
	Text string  `json:"text"`
	IDs  []int64 `json:"ids"`
}

func newEncodeCmd() *cobra.Command {
	var (
		asJSON bool
		split  bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode lyric text to token ids",
		Long: "Canonicalizes the arguments (or stdin) and prints the token ids, space separated.\n" +
			"With --split the input is first cut into chunks of at most --split-length\n" +
			"characters and each chunk is printed on its own line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			codec, err := newCodec(cfg)
			if err != nil {
				return err
			}

			var outputs []encodeOutput
			if split {
				chunks, err := text.EncodeChunks(raw, codec, cfg.Text.SplitLength)
				if err != nil {
					return err
				}
				for _, c := range chunks {
					outputs = append(outputs, encodeOutput{Text: c.Canonical, IDs: c.TokenIDs})
				}
			} else {
				canonical := codec.Canonicalize(raw)
				ids, err := codec.EncodeCanonical(canonical)
				if err != nil {
					return err
				}
				outputs = append(outputs, encodeOutput{Text: canonical, IDs: ids})
			}

			return writeEncoded(cmd.OutOrStdout(), outputs, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON with the canonical text and ids")
	cmd.Flags().BoolVar(&split, "split", false, "Split long input into chunks before encoding")

	return cmd
}

// writeEncoded prints one line per output: ids separated by spaces, or a JSON
// object per line with --json.
func writeEncoded(w io.Writer, outputs []encodeOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, o := range outputs {
			if err := enc.Encode(o); err != nil {
				return err
			}
		}
		return nil
	}

	for _, o := range outputs {
		if _, err := fmt.Fprintln(w, formatIDs(o.IDs)); err != nil {
			return err
		}
	}
	return nil
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, " ")
}
