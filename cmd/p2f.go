package cmd

import (
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/phylip"
	"github.com/EdRice4/Macrander/pkg/surrogate"
)

var p2fPhylip string
var p2fDict string
var p2fOutfile string

func init() {
	rootCmd.AddCommand(p2fCmd)

	p2fCmd.Flags().StringVarP(&p2fPhylip, "phylip", "p", "stdin", "Alignment to convert, in phylip format")
	p2fCmd.Flags().StringVarP(&p2fDict, "dict", "d", "", "Surrogate dictionary from f2p. If given, the original sequence names are restored")
	p2fCmd.Flags().StringVarP(&p2fOutfile, "outfile", "o", "stdout", "Fasta file to write")

	p2fCmd.Flags().SortFlags = false
}

var p2fCmd = &cobra.Command{
	Use:   "p2f",
	Short: "Convert a phylip alignment to fasta",
	Long: `Convert a phylip alignment to fasta

Example usage:
	macrander p2f -p spiders_unique.phylip -d spiders.txt -o spiders.fasta

Sequential and interleaved layouts are both read. If input and output files are not
specified, the behaviour is to read from stdin and write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("phylip"))
		if err != nil {
			return err
		}
		defer in.Close()

		var dict *surrogate.Dictionary
		if p2fDict != "" {
			d, err := gfio.OpenIn(*cmd.Flag("dict"))
			if err != nil {
				return err
			}
			dict, err = surrogate.Read(d)
			d.Close()
			if err != nil {
				return err
			}
		}

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		err = phylip.ToFasta(in, dict, out)

		return
	},
}
