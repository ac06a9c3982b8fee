package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/EdRice4/Macrander/pkg/batch"
	"github.com/EdRice4/Macrander/pkg/gfio"
	"github.com/EdRice4/Macrander/pkg/logger"
)

// LogLevelEnv supplies the default for --log-level. It may be set in a .env file
// in the working directory.
const LogLevelEnv = "MACRANDER_LOG_LEVEL"

var errNoInput = errors.New("no input specified: give the input file flags or use --batch")
var errStdinInput = errors.New("can't read from stdin, output file names are taken from the input file name")

var logLevel string
var batchMode bool
var batchDir string

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level (debug, info, warn, error). Defaults to $"+LogLevelEnv+" if set")
}

var (
	rootCmd = &cobra.Command{
		Use:   "macrander",
		Short: "batch converters for phylogenetic and transcriptomic flat files",
		Long: `batch converters for phylogenetic and transcriptomic flat files

Most commands take their inputs from flags, or with --batch find every input in
a directory (--dir) by file name.`,
		Version:           "1.0.0",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func setup(cmd *cobra.Command, args []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv(LogLevelEnv); v != "" {
			logLevel = v
		}
	}

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return logger.InitLogger(level)
}

// Execute executes the root command.
func Execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func addBatchFlags(cmd *cobra.Command, marker string) {
	cmd.Flags().BoolVarP(&batchMode, "batch", "b", false, "Run on every matching file in --dir (file names containing "+marker+")")
	cmd.Flags().StringVarP(&batchDir, "dir", "", ".", "Directory to search in batch mode")
	cmd.Flags().Lookup("batch").NoOptDefVal = "true"
}

// run processes one job made of the files named by inputFlags, or in batch
// mode every job find returns for --dir
func run(cmd *cobra.Command, inputFlags []string, find func(dir string) ([]batch.Job, error), process func(batch.Job) (batch.Result, error)) error {
	var jobs []batch.Job
	if batchMode {
		var err error
		jobs, err = find(batchDir)
		if err != nil {
			return err
		}
	} else {
		inputs := make([]string, 0, len(inputFlags))
		for _, name := range inputFlags {
			flag := cmd.Flag(name)
			if flag.Value.String() == "" {
				return errNoInput
			}
			if flag.Value.String() == "stdin" {
				return fmt.Errorf("--%s: %w", name, errStdinInput)
			}
			// open and close it here so that a bad path is reported against its flag
			f, err := gfio.OpenIn(*flag)
			if err != nil {
				return err
			}
			f.Close()
			inputs = append(inputs, flag.Value.String())
		}
		jobs = []batch.Job{{Inputs: inputs}}
	}

	_, err := batch.Run(cmd.Name(), jobs, process)
	return err
}

// newRand seeds from the clock if seed is 0
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
