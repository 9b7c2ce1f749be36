// Package cli is the command line front end: it loads an archive and prints
// one report line per hotel.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"agoda_hotel/internal/adapters/agoda"
	"agoda_hotel/internal/adapters/observability"
	"agoda_hotel/internal/app"
	"agoda_hotel/internal/domain"
	"agoda_hotel/internal/shared"
)

// exitError carries a process status out of cobra once the message has
// already been printed.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// NewRootCmd builds the command. Report lines go to stdout, logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		id      string
		url     string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "agodaparser <zipped_datafile>",
		Short: "Parse zipped Agoda hotel data file",
		Long: `Unzips and parses the Agoda hotel data file in memory and prints
every hotel with its lowest rate.

With --id or --url only the matching hotel is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv, stderr)
			level := "warn"
			if verbose {
				level = "debug"
			}
			observability.SetLevel(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cat, err := agoda.Load(path)
			if err != nil {
				var fe *domain.FormatError
				if errors.As(err, &fe) {
					fmt.Fprintf(stdout, "ERROR: '%s' is not a valid zip file\n", path)
				} else {
					fmt.Fprintf(stdout, "ERROR: %v\n", err)
				}
				return exitError{code: 1}
			}

			switch {
			case cmd.Flags().Changed("id"):
				return printOne(stdout, func() (domain.Hotel, bool, error) { return cat.Find(id) })
			case cmd.Flags().Changed("url"):
				return printOne(stdout, func() (domain.Hotel, bool, error) { return cat.FindURL(url) })
			}
			return app.WriteReport(stdout, cat.GetAll())
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&id, "id", "", "print only the hotel with this hotel_id")
	cmd.Flags().StringVar(&url, "url", "", "print only the first hotel whose url is contained in this URL")
	cmd.MarkFlagsMutuallyExclusive("id", "url")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log loader progress to stderr")
	return cmd
}

func printOne(w io.Writer, lookup func() (domain.Hotel, bool, error)) error {
	h, ok, err := lookup()
	if err != nil {
		return err
	}
	if !ok {
		_, err := fmt.Fprintln(w, "No hotel found")
		return err
	}
	_, err = fmt.Fprintln(w, app.ReportLine(h))
	return err
}

// Execute runs the command and returns the process exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	return 0
}
