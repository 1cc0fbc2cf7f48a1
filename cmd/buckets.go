package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/pulse/internal/cli"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/pipeline"
)

var (
	flagBucketUnit   string
	flagBucketCount  int
	flagBucketField  string
	flagBucketKind   string
	flagBucketEntity string
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets <module>",
	Short: "Per-day, week or month aggregates for one module",
	Long: "Partition a module's records into consecutive calendar buckets ending at the reference date.\n" +
		"Counts every record; with --field, also sums and averages that measure.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: moduleNames(),
	RunE:      runBuckets,
}

func init() {
	bucketsCmd.Flags().StringVarP(&flagBucketUnit, "unit", "u", "day", "Bucket unit: day, week or month")
	bucketsCmd.Flags().IntVarP(&flagBucketCount, "count", "n", 0, "Number of buckets (default: default_days for days, 12 otherwise)")
	bucketsCmd.Flags().StringVarP(&flagBucketField, "field", "f", "", "Measure to sum, e.g. amount, calories, mood")
	bucketsCmd.Flags().StringVarP(&flagBucketKind, "kind", "k", "", "Only records of this kind, e.g. expense")
	bucketsCmd.Flags().StringVarP(&flagBucketEntity, "entity", "e", "", "Only records whose entity contains this text")
	rootCmd.AddCommand(bucketsCmd)
}

func moduleNames() []string {
	names := make([]string, len(model.Modules))
	for i, m := range model.Modules {
		names[i] = string(m)
	}
	return names
}

// bucketCount resolves --count. Zero or less picks the default: defaultDays
// for days, 12 for weeks and months.
func bucketCount(unit pipeline.Unit, n, defaultDays int) (int, error) {
	if n > pipeline.MaxBuckets {
		return 0, fmt.Errorf("--count %d is too large (max %d)", n, pipeline.MaxBuckets)
	}
	if n > 0 {
		return n, nil
	}
	if unit == pipeline.UnitDay && defaultDays > 0 {
		return min(defaultDays, pipeline.MaxBuckets), nil
	}
	return 12, nil
}

func runBuckets(_ *cobra.Command, args []string) error {
	m, ok := model.ParseModule(args[0])
	if !ok {
		return fmt.Errorf("unknown module %q (want one of %s)", args[0], strings.Join(moduleNames(), ", "))
	}
	unit, err := pipeline.ParseUnit(flagBucketUnit)
	if err != nil {
		return err
	}
	count, err := bucketCount(unit, flagBucketCount, runCfg.General.DefaultDays)
	if err != nil {
		return err
	}

	result, err := loadData()
	if err != nil {
		return err
	}

	records := pipeline.FilterByModule(result.Records, m)
	records = pipeline.FilterByKind(records, flagBucketKind)
	records = pipeline.FilterByEntity(records, flagBucketEntity)

	var value pipeline.ValueFunc = pipeline.CountOf
	if flagBucketField != "" {
		value = pipeline.Field(flagBucketField)
	}
	window := pipeline.Window{Count: count, Unit: unit}
	buckets := pipeline.Bucket(records, window, runNow, value)

	if flagJSON {
		return printJSON(buckets)
	}

	fmt.Println()
	from, to := pipeline.WindowRange(window, runNow)
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %d %ss  %s to %s", strings.ToUpper(string(m)), count, unit, from, to)))
	fmt.Println()

	headers := []string{"Bucket", "From", "To", "Records"}
	if flagBucketField != "" {
		headers = append(headers, "Sum "+flagBucketField, "Avg")
	}

	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		row := []string{b.Label, b.Start, b.End, cli.FormatNumber(int64(b.Count))}
		if flagBucketField != "" {
			row = append(row, cli.FormatCount(b.Sum), cli.FormatAverage(b.Average, b.Measured > 0))
		}
		rows = append(rows, row)
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))

	values := bucketCounts(buckets)
	if flagBucketField != "" {
		values = cli.BucketSums(buckets)
	}
	fmt.Println()
	fmt.Println("  " + cli.RenderSeries(buckets, values))
	return nil
}
