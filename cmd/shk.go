package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/motif"
)

var shkPep string

func init() {
	rootCmd.AddCommand(shkCmd)

	shkCmd.Flags().StringVarP(&shkPep, "pep", "", "", "Peptide file, in fasta format")
	addBatchFlags(shkCmd, motif.PepMarker)

	shkCmd.Flags().SortFlags = false
}

var shkCmd = &cobra.Command{
	Use:   "shk",
	Short: "Keep the peptides that contain an ShK domain",
	Long: `Keep the peptides that contain an ShK domain

Example usage:
	macrander shk --pep Trinity.fasta.transdecoder.pep

An ShK domain is six cysteines spaced C x(1+) C x(1+) C x(1-50) C x(3) C x(2) C
(Rangaraju et al. 2010, doi:10.1074/jbc.M109.071266; SMART SM00254). Peptides with at
least one are written to Trinity.fasta.transdecoder_filtered.pep, and every domain
found is listed in Trinity.fasta.transdecoder_ShK.tsv.

With --batch, every .pep file in --dir is filtered, except earlier _filtered outputs.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		err = run(cmd, []string{"pep"}, motif.Jobs, func(j batch.Job) (batch.Result, error) {
			return motif.FilterFile(j.Inputs[0])
		})

		return
	},
}
