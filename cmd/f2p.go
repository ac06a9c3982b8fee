package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/phylip"
)

var f2pFasta string
var f2pSequential bool
var f2pWidth int
var f2pSeed int64

func init() {
	rootCmd.AddCommand(f2pCmd)

	f2pCmd.Flags().StringVarP(&f2pFasta, "fasta", "f", "", "Alignment to convert, in fasta format")
	f2pCmd.Flags().BoolVarP(&f2pSequential, "sequential", "s", false, "Write sequential phylip instead of interleaved")
	f2pCmd.Flags().IntVarP(&f2pWidth, "width", "", phylip.DefaultWidth, "Number of columns in each interleaved block")
	f2pCmd.Flags().Int64VarP(&f2pSeed, "seed", "", 0, "Seed for generating surrogate IDs (0 seeds from the clock)")
	addBatchFlags(f2pCmd, phylip.FastaMarker)

	f2pCmd.Flags().Lookup("sequential").NoOptDefVal = "true"

	f2pCmd.Flags().SortFlags = false
}

var f2pCmd = &cobra.Command{
	Use:   "f2p",
	Short: "Convert a fasta alignment to phylip, with short surrogate IDs",
	Long: `Convert a fasta alignment to phylip, with short surrogate IDs

Example usage:
	macrander f2p -f spiders.fasta

writes three files:
	spiders_original.phylip   the alignment with its own sequence names
	spiders_unique.phylip     the alignment with a random 10-digit surrogate for each name
	spiders.txt               the surrogate<TAB>original dictionary

Use the dictionary with subtree to put the original names back into trees built from
the _unique file, or with p2f to convert it back to fasta.

With --batch, every file in --dir whose name contains ".fasta" is converted.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		opts := phylip.Options{Sequential: f2pSequential, Width: f2pWidth, Rand: newRand(f2pSeed)}

		err = run(cmd, []string{"fasta"}, phylip.Jobs, func(j batch.Job) (batch.Result, error) {
			return phylip.ConvertFile(j.Inputs[0], opts)
		})

		return
	},
}
