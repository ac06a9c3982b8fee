package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/goterm"
)

var gotpmGO string
var gotpmTPM string

func init() {
	rootCmd.AddCommand(gotpmCmd)

	gotpmCmd.Flags().StringVarP(&gotpmGO, "go", "", "", "Gene ontology file: transcript_id<TAB>backtick-separated GO terms, with a header line")
	gotpmCmd.Flags().StringVarP(&gotpmTPM, "tpm", "", "", "Expression file: transcript_id<TAB>TPM, with a header line")
	addBatchFlags(gotpmCmd, goterm.GOMarker+" and "+goterm.TPMMarker)

	gotpmCmd.Flags().SortFlags = false
}

var gotpmCmd = &cobra.Command{
	Use:   "gotpm",
	Short: "Tag GO terms with the expression of their transcripts",
	Long: `Tag GO terms with the expression of their transcripts

Example usage:
	macrander gotpm --go Seq_One_GO.txt --tpm Seq_One_TPM.txt

For each GO category (cellular_component, biological_process and molecular_function),
writes the transcripts with at least one term in that category, each term followed by
:<the transcript's TPM divided by its number of terms in the category>:
	Seq_One_CC.txt
	Seq_One_BP.txt
	Seq_One_MF.txt
and the summed TPM of every GO ID to Seq_One_CUM.txt.

With --batch, every _GO.txt file in --dir is paired with the _TPM.txt file of the same name.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		err = run(cmd, []string{"go", "tpm"}, goterm.Jobs, func(j batch.Job) (batch.Result, error) {
			return goterm.ConcatenateFiles(j.Inputs[0], j.Inputs[1])
		})

		return
	},
}
