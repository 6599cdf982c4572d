package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/casestack/config"
)

func runSpace(cmd *cobra.Command, args []string) error {
	logger.Debug("Loading experiment", zap.String("path", args[0]))

	exp, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if err := exp.Validate(); err != nil {
		return err
	}

	space, err := exp.Space()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "experiment: %s\n", exp.Name)
	for _, c := range space.Cases() {
		fmt.Fprintf(out, "  %-12s %-28s %d [%s]\n", c.Shortname, c.Longname, c.Len(), strings.Join(c.Values(), ", "))
	}
	fmt.Fprintf(out, "tuples: %d\n", space.Size())

	if fields := exp.FieldNames(); len(fields) > 0 {
		fmt.Fprintf(out, "fields: %s\n", strings.Join(fields, ", "))
	}

	if listAll {
		for i, t := range space.Indexed() {
			fmt.Fprintf(out, "%6d %s\n", i, t)
		}
	}

	logger.Debug("Listed case space", zap.Int("cases", space.Len()), zap.Int("tuples", space.Size()))

	return nil
}
