package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/transdecoder"
)

var pep2nucPep string
var pep2nucFasta string
var pep2nucCheck bool

func init() {
	rootCmd.AddCommand(pep2nucCmd)

	pep2nucCmd.Flags().StringVarP(&pep2nucPep, "pep", "", "", "TransDecoder peptide file")
	pep2nucCmd.Flags().StringVarP(&pep2nucFasta, "fasta", "", "", "Transcripts the peptides were predicted from, in fasta format")
	pep2nucCmd.Flags().BoolVarP(&pep2nucCheck, "check", "", false, "Translate each extracted sequence and warn if it doesn't match its peptide")
	addBatchFlags(pep2nucCmd, transdecoder.PepMarker+" and "+transdecoder.FastaMarker)

	pep2nucCmd.Flags().Lookup("check").NoOptDefVal = "true"

	pep2nucCmd.Flags().SortFlags = false
}

var pep2nucCmd = &cobra.Command{
	Use:   "pep2nuc",
	Short: "Extract the nucleotide sequences of TransDecoder peptides",
	Long: `Extract the nucleotide sequences of TransDecoder peptides

Example usage:
	macrander pep2nuc --pep Trinity.fasta.transdecoder.pep --fasta Trinity.fasta

Each peptide header must carry its location as SEQID:START-END(STRAND). The matching
stretch of the transcript, reverse complemented for the minus strand, is written to
Trinity_nuc.fasta in peptide order.

Plain fasta files with regular line lengths are read through a fai index, so only the
requested regions are loaded.

With --batch, the .pep files in --dir are paired in name order with the .fasta files.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		err = run(cmd, []string{"pep", "fasta"}, transdecoder.Jobs, func(j batch.Job) (batch.Result, error) {
			return transdecoder.ExtractFile(j.Inputs[0], j.Inputs[1], pep2nucCheck)
		})

		return
	},
}
