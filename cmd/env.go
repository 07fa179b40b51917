package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the service's managed endpoints",
}

var envLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List managed endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		endpoints := client.Endpoints(cmd.Context())
		if endpoints == nil {
			return fmt.Errorf("failed to list endpoints")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tURL\tSTATUS")
		for _, e := range endpoints {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", e.ID, e.Name, e.URL, e.Status)
		}
		return w.Flush()
	},
}

var envInspectCmd = &cobra.Command{
	Use:   "inspect <endpoint-id>",
	Short: "Show one endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("endpoint id must be numeric: %q", args[0])
		}

		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		details := client.EndpointDetails(cmd.Context(), id)
		if details == nil {
			return fmt.Errorf("endpoint %d not found", id)
		}
		fmt.Printf("ID:     %d\nName:   %s\nURL:    %s\nType:   %d\nStatus: %d\n",
			details.ID, details.Name, details.URL, details.Type, details.Status)
		return nil
	},
}

var envStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the remote service's version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		status := client.Status(cmd.Context())
		if status == nil {
			return fmt.Errorf("failed to fetch service status")
		}
		fmt.Printf("Version:  %s\n", status.Version)
		if status.InstanceID != "" {
			fmt.Printf("Instance: %s\n", status.InstanceID)
		}
		return nil
	},
}

func init() {
	envCmd.AddCommand(envLsCmd, envInspectCmd, envStatusCmd)
	rootCmd.AddCommand(envCmd)
}
