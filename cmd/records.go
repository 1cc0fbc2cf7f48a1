package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

var (
	flagRecordsLimit  int
	flagRecordsEntity string
)

var recordsCmd = &cobra.Command{
	Use:       "records [module]",
	Short:     "List recent records",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: moduleNames(),
	RunE:      runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&flagRecordsLimit, "limit", "l", 20, "Max records to show")
	recordsCmd.Flags().StringVarP(&flagRecordsEntity, "entity", "e", "", "Filter to entity (substring match)")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(_ *cobra.Command, args []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}

	records := result.Records
	if len(args) == 1 {
		m, ok := model.ParseModule(args[0])
		if !ok {
			return fmt.Errorf("unknown module %q (want one of %s)", args[0], strings.Join(moduleNames(), ", "))
		}
		records = pipeline.FilterByModule(records, m)
	}
	records = pipeline.FilterByEntity(records, flagRecordsEntity)

	records = append([]model.Record(nil), records...)
	pipeline.SortRecent(records)
	if flagRecordsLimit > 0 && len(records) > flagRecordsLimit {
		records = records[:flagRecordsLimit]
	}

	if flagJSON {
		return printJSON(records)
	}
	if len(records) == 0 {
		fmt.Println("\n  No matching records.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RECENT RECORDS  %d shown", len(records))))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Date, string(r.Module), r.Kind, recordName(r), formatValues(r.Values)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Module", "Kind", "Entity", "Values"},
		Rows:    rows,
	}))
	return nil
}

func recordName(r model.Record) string {
	if r.Label != "" {
		return r.Label
	}
	return r.Entity
}

// formatValues renders measures as "k=v" pairs in name order.
func formatValues(values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + cli.FormatCount(values[k])
	}
	return strings.Join(parts, " ")
}
