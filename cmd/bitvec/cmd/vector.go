package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitvector/bitvector"
	"github.com/spacemeshos/bitvector/shared"
)

// vectorFromArgs builds the vector the command operates on: a zeroed one when no
// words are given, otherwise one filled from the words.
func (a *app) vectorFromArgs(args []string) (*bitvector.Vector, error) {
	if len(args) == 0 {
		return bitvector.New(a.cfg.Bits)
	}

	words, err := parseWords(args)
	if err != nil {
		return nil, err
	}
	v, err := bitvector.FromWords(a.cfg.Bits, words)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("vector built from words", zap.Int("bits", v.Len()), zap.Int("words", len(words)))
	return v, nil
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode WORD...",
		Short: "Print the hex dump of a vector built from 64-bit words",
		Long: `encode packs the given 64-bit words into a vector of --bits bits, bit 0 of
the first word first, and prints the packed bytes in hex.`,
		Example: `  bitvec encode -n 16 0xABCD   # cdab`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.vectorFromArgs(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Hex())
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode HEX",
		Short: "Print the 64-bit words of a vector given as a hex dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := bitvector.ParseHex(a.cfg.Bits, args[0])
			if err != nil {
				return err
			}
			for _, w := range v.Words() {
				fmt.Fprintf(cmd.OutOrStdout(), "%#x\n", w)
			}
			return nil
		},
	}
}

func newBitCmd(a *app) *cobra.Command {
	var (
		pos   int
		value bool
	)

	bitCmd := &cobra.Command{
		Use:   "bit [WORD...]",
		Short: "Read or write a single bit",
		Long: `bit prints the bit at --pos. With --set, the bit is set to the given
value and the resulting vector is printed in hex instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.vectorFromArgs(args)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("set") {
				if err := v.SetBit(pos, value); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.Hex())
				return nil
			}

			set, err := v.Bit(pos)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), set)
			return nil
		},
	}

	bitCmd.Flags().IntVar(&pos, "pos", 0, "bit position")
	bitCmd.Flags().BoolVar(&value, "set", false, "value to write at --pos")
	return bitCmd
}

func newFieldCmd(a *app) *cobra.Command {
	var (
		offset   int
		length   int
		asVector bool
	)

	fieldCmd := &cobra.Command{
		Use:   "field [WORD...]",
		Short: "Read a bitfield",
		Long: `field prints the --length bits starting at --offset as an integer, bit 0 of
the integer being the bit at --offset. With --vector, the bitfield is printed as
the hex dump of a new vector instead, which allows fields wider than 64 bits.`,
		Example: `  bitvec field -n 64 --offset 8 --length 16 0x0123456789ABCDEF   # 0xabcd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.vectorFromArgs(args)
			if err != nil {
				return err
			}

			if asVector {
				field, err := v.Bitfield(offset, length)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), field.Hex())
				return nil
			}

			val, err := v.Uint64(offset, length)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%#x\n", val)
			return nil
		},
	}

	fieldCmd.Flags().IntVar(&offset, "offset", 0, "offset of the first bit")
	fieldCmd.Flags().IntVar(&length, "length", 0, "number of bits")
	fieldCmd.Flags().BoolVar(&asVector, "vector", false, "print the field as a vector hex dump")
	return fieldCmd
}

func newSetCmd(a *app) *cobra.Command {
	var (
		offset    int
		length    int
		value     string
		clearBits bool
		fromHex   string
		fromBits  int
	)

	setCmd := &cobra.Command{
		Use:   "set [WORD...]",
		Short: "Write a bitfield and print the resulting vector",
		Long: `set writes a bitfield at --offset and prints the resulting vector in hex.
The written bits are one of:
  --value V --length L     the L least-significant bits of V (L <= 64)
  --clear --length L       L zero bits
  --from-hex H --from-bits M  the M-bit vector with hex dump H`,
		Example: `  bitvec set -n 32 --offset 8 --length 16 --value 0xABCD   # 00cdab00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.vectorFromArgs(args)
			if err != nil {
				return err
			}

			if (cmd.Flags().Changed("value") || clearBits) && !cmd.Flags().Changed("length") {
				return fmt.Errorf("%w: --length is required with --value and --clear", shared.ErrInvalidArgument)
			}

			var src bitvector.Source
			switch {
			case cmd.Flags().Changed("value"):
				val, err := parseWords([]string{value})
				if err != nil {
					return err
				}
				src = bitvector.Field{Value: val[0], Len: length}
			case clearBits:
				src = bitvector.Clear{Len: length}
			case cmd.Flags().Changed("from-hex"):
				src, err = bitvector.ParseHex(fromBits, fromHex)
				if err != nil {
					return err
				}
			default:
				return errors.New("one of --value, --clear or --from-hex is required")
			}

			if err := v.SetBitfield(offset, src); err != nil {
				return err
			}
			a.logger.Debug("bitfield written", zap.Int("offset", offset), zap.Stringer("vector", v))
			fmt.Fprintln(cmd.OutOrStdout(), v.Hex())
			return nil
		},
	}

	flags := setCmd.Flags()
	flags.IntVar(&offset, "offset", 0, "offset of the first written bit")
	flags.IntVar(&length, "length", 0, "number of bits written by --value or --clear")
	flags.StringVar(&value, "value", "", "integer to write")
	flags.BoolVar(&clearBits, "clear", false, "write zero bits")
	flags.StringVar(&fromHex, "from-hex", "", "hex dump of a vector to write")
	flags.IntVar(&fromBits, "from-bits", 0, "bit length of the --from-hex vector")
	setCmd.MarkFlagsMutuallyExclusive("value", "clear", "from-hex")
	setCmd.MarkFlagsRequiredTogether("from-hex", "from-bits")
	return setCmd
}
