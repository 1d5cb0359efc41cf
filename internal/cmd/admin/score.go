package admin

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/louisbranch/bengkel/internal/services/web/performance"
)

type scoreOptions struct {
	revenue      float64
	count        int
	avg          float64
	satisfaction float64
	jsonOutput   bool
}

type scoreReport struct {
	Score                int      `json:"score"`
	TotalRevenue         float64  `json:"total_revenue"`
	TransactionCount     int      `json:"transaction_count"`
	AvgTransactionValue  float64  `json:"avg_transaction_value"`
	CustomerSatisfaction *float64 `json:"customer_satisfaction,omitempty"`
}

func newScoreCommand() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the performance score for the given mechanic totals",
		Long: "Computes the 0..100 mechanic performance score.\n\n" +
			"When --avg is omitted it is derived from --revenue and --count.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, flag := range []struct {
				name  string
				value float64
			}{
				{"revenue", opts.revenue},
				{"avg", opts.avg},
				{"satisfaction", opts.satisfaction},
			} {
				if math.IsNaN(flag.value) || math.IsInf(flag.value, 0) {
					return fmt.Errorf("--%s must be a finite number", flag.name)
				}
			}
			in := performance.Input{
				TotalRevenue:        opts.revenue,
				TransactionCount:    opts.count,
				AvgTransactionValue: opts.avg,
			}
			if !cmd.Flags().Changed("avg") && opts.count > 0 {
				in.AvgTransactionValue = opts.revenue / float64(opts.count)
			}
			if cmd.Flags().Changed("satisfaction") {
				satisfaction := opts.satisfaction
				in.CustomerSatisfaction = &satisfaction
			}
			report := scoreReport{
				Score:                performance.Score(in),
				TotalRevenue:         in.TotalRevenue,
				TransactionCount:     in.TransactionCount,
				AvgTransactionValue:  in.AvgTransactionValue,
				CustomerSatisfaction: in.CustomerSatisfaction,
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintf(out, "Score: %d\n", report.Score)
			return nil
		},
	}
	cmd.Flags().Float64Var(&opts.revenue, "revenue", 0, "Total revenue in rupiah")
	cmd.Flags().IntVar(&opts.count, "count", 0, "Number of transactions")
	cmd.Flags().Float64Var(&opts.avg, "avg", 0, "Average transaction value in rupiah")
	cmd.Flags().Float64Var(&opts.satisfaction, "satisfaction", 0, "Mean customer rating, 0..5")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output JSON")
	return cmd
}
