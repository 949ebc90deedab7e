package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dubstrip/internal/ffprobe"
	"dubstrip/internal/filter"
	"dubstrip/internal/language"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var languagesFlag string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the stream layout of a single media file",
		Long: `Inspect runs ffprobe against one file and renders its streams. When
--languages is given, each audio and subtitle stream is annotated with the
keep/drop decision the plan command would make.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, args[0])
			if err != nil {
				return err
			}

			var f filter.Filter
			annotate := false
			if strings.TrimSpace(languagesFlag) != "" {
				if f, err = filter.Parse(languagesFlag); err != nil {
					return err
				}
				switch cfg.Filter.KeepUntagged {
				case "always":
					f = f.WithUntagged(true)
				case "never":
					f = f.WithUntagged(false)
				}
				annotate = true
			}

			headers := []string{"Index", "Kind", "Codec", "Language"}
			if annotate {
				headers = append(headers, "Decision")
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				tag := language.FromTags(stream.Tags)
				kind := string(stream.Kind())
				if stream.IsDefault() {
					kind += " (default)"
				}
				row := []string{
					strconv.Itoa(stream.Index),
					kind,
					stream.CodecName,
					fmt.Sprintf("%s (%s)", language.Display(tag), tag),
				}
				if annotate {
					decision := "drop"
					if f.Keep(stream) {
						decision = "keep"
					}
					row = append(row, decision)
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %d streams)\n", args[0], result.Format.FormatName, len(result.Streams))
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVarP(&languagesFlag, "languages", "l", "", "Annotate streams with keep/drop for this allow-list")

	return cmd
}
