package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ahrav/go-threatscore/internal/cyclic"
	"github.com/ahrav/go-threatscore/internal/sequences"
)

func (c *cli) newCyclicCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cyclic HOUR",
		Short:   "Encode an hour of the day as a point on the unit circle",
		Example: "  threatscore cyclic 23",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("hour must be an integer: %w", err)
			}
			sin, cos, err := cyclic.HourToCyclic(hour)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sin=%.6f cos=%.6f\n", sin, cos)
			return nil
		},
	}
}

func (c *cli) newLCISCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lcis N...",
		Short:   "Print the length of the longest strictly increasing contiguous run",
		Example: "  threatscore lcis 1 3 5 4 7",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseInts(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sequences.LongestIncreasingRun(values))
			return nil
		},
	}
}

func (c *cli) newIntersectCmd() *cobra.Command {
	var a, b []int

	cmd := &cobra.Command{
		Use:     "intersect",
		Short:   "Print the unique values present in both lists",
		Example: "  threatscore intersect --a 1,2,2,1 --b 2,2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			common := sequences.Intersection(a, b)
			slices.Sort(common)
			fmt.Fprintln(cmd.OutOrStdout(), joinInts(common, " "))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&a, "a", nil, "First list")
	cmd.Flags().IntSliceVar(&b, "b", nil, "Second list")
	return cmd
}

func (c *cli) newMergeCmd() *cobra.Command {
	var (
		a, b []int
		m    int
	)

	cmd := &cobra.Command{
		Use:     "merge",
		Short:   "Merge sorted list b into the buffer of sorted list a",
		Example: "  threatscore merge --a 1,2,3,0,0,0 --m 3 --b 2,5,6",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(b)
			if err := sequences.MergeSortedInPlace(a, m, b, n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinInts(a[:m+n], " "))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&a, "a", nil, "Sorted list followed by a buffer of len(b) slots")
	cmd.Flags().IntVar(&m, "m", 0, "Number of meaningful leading values in a")
	cmd.Flags().IntSliceVar(&b, "b", nil, "Sorted list to merge")
	_ = cmd.MarkFlagRequired("m")
	return cmd
}

func parseInts(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
