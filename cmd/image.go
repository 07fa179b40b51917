package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Inspect images on an endpoint",
}

var imageLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		endpointID, ok := client.EnsureEndpoint(cmd.Context(), endpoint)
		if !ok {
			return fmt.Errorf("no endpoint available")
		}

		images := client.Images(cmd.Context(), endpointID)
		if images == nil {
			return fmt.Errorf("failed to list images on endpoint %d", endpointID)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAGS\tSIZE")
		for _, img := range images {
			tags := "<none>"
			if len(img.RepoTags) > 0 {
				tags = img.RepoTags[0]
			}
			fmt.Fprintf(w, "%.19s\t%s\t%s\n", img.ID, tags, units.HumanSize(float64(img.Size)))
		}
		return w.Flush()
	},
}

func init() {
	imageCmd.AddCommand(imageLsCmd)
	rootCmd.AddCommand(imageCmd)
}
