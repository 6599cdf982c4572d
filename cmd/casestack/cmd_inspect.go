package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/casestack/archive"
	"github.com/arloliu/casestack/labeled"
)

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	header, desc, err := archive.Inspect(data)
	if err != nil {
		return err
	}
	logger.Debug("Parsed archive header",
		zap.String("path", args[0]),
		zap.Stringer("compression", header.Flag.CompressionType()),
		zap.Uint32("variables", header.VariableCount))

	// full decode verifies the payload checksum
	if _, err := archive.Decode(data); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind: %s\n", desc.Kind)
	if desc.Name != "" {
		fmt.Fprintf(out, "name: %s\n", desc.Name)
	}
	fmt.Fprintf(out, "compression: %s\n", header.Flag.CompressionType())
	fmt.Fprintf(out, "payload: %d bytes (%d raw)\n", header.PayloadLength, header.RawLength)
	printAttrs(out, "", desc.Attrs)

	for _, v := range desc.Variables {
		fmt.Fprintf(out, "%-5s %-16s (%s) %v %s\n", v.Role, v.Name, strings.Join(v.Dims, ", "), v.Shape, v.DType)
		printAttrs(out, "      ", v.Attrs)
	}

	return nil
}

func printAttrs(out io.Writer, indent string, attrs labeled.Attrs) {
	for _, k := range attrs.Keys() {
		fmt.Fprintf(out, "%s@%s = %v\n", indent, k, attrs[k])
	}
}
