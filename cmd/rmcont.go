package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/contam"
)

var rmcontFasta string
var rmcontList string

func init() {
	rootCmd.AddCommand(rmcontCmd)

	rmcontCmd.Flags().StringVarP(&rmcontFasta, "fasta", "f", "", "Fasta file to clean")
	rmcontCmd.Flags().StringVarP(&rmcontList, "remove", "r", "", "File of sequence IDs to remove, one per line")
	addBatchFlags(rmcontCmd, contam.FastaMarker+" and "+contam.ListMarker)

	rmcontCmd.Flags().SortFlags = false
}

var rmcontCmd = &cobra.Command{
	Use:   "rmcont",
	Short: "Remove contaminant sequences from a fasta file",
	Long: `Remove contaminant sequences from a fasta file

Example usage:
	macrander rmcont -f spiders.fasta -r contaminants.txt

writes spiders_new.fasta without the records whose IDs are listed. IDs must match
exactly.

With --batch, the .fasta files in --dir are paired in name order with the .txt files.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		err = run(cmd, []string{"fasta", "remove"}, contam.Jobs, func(j batch.Job) (batch.Result, error) {
			return contam.RemoveFile(j.Inputs[0], j.Inputs[1])
		})

		return
	},
}
