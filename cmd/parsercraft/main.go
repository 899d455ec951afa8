// Command parsercraft is the console front end of the framework: it
// parses programs with a PEG grammar and lowers the AST to a target form.
package main

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/parsercraft/parsercraft"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:           "parsercraft",
		Short:         "PEG-based language construction framework",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		log.SetLevel(logrus.InfoLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	})

	root.AddCommand(newParseCommand())
	root.AddCommand(newTranslateCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newReplCommand())

	if err := root.Execute(); err != nil {
		log.Error(err.Error())
		var pe *parsercraft.Error
		if errors.As(err, &pe) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
