package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/surrogate"
	"github.com/EdRice4/Macrander/pkg/treesub"
)

var errBatchOutfile = errors.New("--outfile can't be used with --batch, each tree is written next to its input")

var subtreeTree string
var subtreeDict string
var subtreeOutfile string

func init() {
	rootCmd.AddCommand(subtreeCmd)

	subtreeCmd.Flags().StringVarP(&subtreeTree, "tree", "t", "", "Tree (or any text file) containing surrogate IDs")
	subtreeCmd.Flags().StringVarP(&subtreeDict, "dict", "d", "", "Surrogate dictionary from f2p")
	subtreeCmd.Flags().StringVarP(&subtreeOutfile, "outfile", "o", "", "File to write. Defaults to the tree's name with .tre replaced by _subbed.tre")
	addBatchFlags(subtreeCmd, treesub.TreeMarker+" and "+treesub.DictMarker)

	subtreeCmd.Flags().SortFlags = false
}

var subtreeCmd = &cobra.Command{
	Use:   "subtree",
	Short: "Replace surrogate IDs in a tree with the original sequence names",
	Long: `Replace surrogate IDs in a tree with the original sequence names

Example usage:
	macrander subtree -t spiders.tre -d spiders.txt

writes spiders_subbed.tre. Only whole names are replaced: a name is anything between
whitespace and newick punctuation, so 123456 is untouched by a dictionary entry for 12345.

With --outfile, the tree may be read from stdin and written to stdout:
	cat spiders.tre | macrander subtree -t stdin -d spiders.txt -o stdout

With --batch, every .tre file in --dir is paired with the .txt dictionary of the same name.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		if subtreeOutfile != "" && batchMode {
			return errBatchOutfile
		}
		if subtreeOutfile != "" {
			return subtreeStream(cmd)
		}

		err = run(cmd, []string{"tree", "dict"}, treesub.Jobs, func(j batch.Job) (batch.Result, error) {
			return treesub.SubstituteFile(j.Inputs[0], j.Inputs[1], treesub.OutputPath(j.Inputs[0]))
		})

		return
	},
}

func subtreeStream(cmd *cobra.Command) error {
	if subtreeTree == "" || subtreeDict == "" {
		return errNoInput
	}

	d, err := gfio.OpenIn(*cmd.Flag("dict"))
	if err != nil {
		return err
	}
	dict, err := surrogate.Read(d)
	d.Close()
	if err != nil {
		return err
	}

	in, err := gfio.OpenIn(*cmd.Flag("tree"))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := gfio.OpenOut(*cmd.Flag("outfile"))
	if err != nil {
		return err
	}
	defer out.Close()

	if err = treesub.Rewrite(in, dict, out); err != nil {
		return err
	}
	return out.Close()
}
