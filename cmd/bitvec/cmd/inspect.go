package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bitvector/config"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [WORD...]",
		Short: "Print the packed layout of a vector",
		Long: `inspect prints one row per packed byte with the bits it holds, least-significant
bit first, followed by the positions of the set bits and the buffer size.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.vectorFromArgs(args)
			if err != nil {
				return err
			}
			layout := config.DeriveLayout(v.Len())
			out := cmd.OutOrStdout()

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Byte", "Hex", "Bits (LSB first)", "Range"})
			table.SetAutoWrapText(false)
			for i, b := range v.Bytes() {
				width := 8
				if i == layout.NumBytes-1 {
					width = layout.TailBits
				}
				table.Append([]string{
					strconv.Itoa(i),
					fmt.Sprintf("%02x", b),
					lsbFirst(b, width),
					fmt.Sprintf("[%d, %d)", i*8, i*8+width),
				})
			}
			table.Render()

			positions, err := v.Positions()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "set bits: %d %s\n", positions.GetCardinality(), positions.String())
			fmt.Fprintf(out, "size: %s (%d bits, %d words, %d padding bits)\n",
				bytefmt.ByteSize(uint64(layout.NumBytes)), v.Len(), layout.NumWords, layout.PaddingBits)
			return nil
		},
	}
}

// lsbFirst renders the width LS bits of b, bit 0 first.
func lsbFirst(b byte, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if b&(1<<i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
