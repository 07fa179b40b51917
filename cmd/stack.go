package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bleriot/skiff/internal/control"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Control stacks",
}

var stackLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		stacks := client.Stacks(cmd.Context())
		if stacks == nil {
			return fmt.Errorf("failed to list stacks")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tENDPOINT\tSTATUS")
		for _, s := range stacks {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", s.ID, s.Name, s.EndpointID, s.Status)
		}
		return w.Flush()
	},
}

func stackIDArg(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("stack id must be a positive integer: %q", arg)
	}
	return id, nil
}

var stackStartCmd = &cobra.Command{
	Use:   "start <stack-id>",
	Short: "Start a stack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := stackIDArg(args[0])
		if err != nil {
			return err
		}
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		if !client.StartStack(cmd.Context(), id, endpoint) {
			return fmt.Errorf("failed to start stack %d", id)
		}
		return nil
	},
}

var stackStopCmd = &cobra.Command{
	Use:   "stop <stack-id>",
	Short: "Stop a stack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := stackIDArg(args[0])
		if err != nil {
			return err
		}
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		if !client.StopStack(cmd.Context(), id, endpoint) {
			return fmt.Errorf("failed to stop stack %d", id)
		}
		return nil
	},
}

var stackRmCmd = &cobra.Command{
	Use:   "rm <stack-id|name>",
	Short: "Remove a stack by id or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		ref := control.ParseStackRef(args[0])
		if _, ok := client.DeleteStack(cmd.Context(), ref, endpoint); !ok {
			return fmt.Errorf("failed to remove stack %q", args[0])
		}
		fmt.Printf("Stack %s removed\n", ref)
		return nil
	},
}

var stackRedeployCmd = &cobra.Command{
	Use:   "redeploy <stack-id>",
	Short: "Stop and restart a stack in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := stackIDArg(args[0])
		if err != nil {
			return err
		}
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		if !client.RedeployStack(cmd.Context(), id, endpoint) {
			return fmt.Errorf("failed to redeploy stack %d", id)
		}
		fmt.Printf("Stack %d redeployed\n", id)
		return nil
	},
}

var (
	updateFile   string
	updateNoPull bool
)

var stackUpdateCmd = &cobra.Command{
	Use:   "update <stack-id>",
	Short: "Replace a stack's compose definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := stackIDArg(args[0])
		if err != nil {
			return err
		}

		content, err := os.ReadFile(updateFile)
		if err != nil {
			return fmt.Errorf("failed to read compose file: %w", err)
		}
		// Catch malformed files locally; the content itself is sent verbatim.
		var probe map[string]any
		if err := yaml.Unmarshal(content, &probe); err != nil {
			return fmt.Errorf("%s is not valid YAML: %w", updateFile, err)
		}

		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		if !client.UpdateStack(cmd.Context(), id, string(content), endpoint, !updateNoPull) {
			return fmt.Errorf("failed to update stack %d", id)
		}
		fmt.Printf("Stack %d updated\n", id)
		return nil
	},
}

func init() {
	stackUpdateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "compose file with the new stack definition")
	stackUpdateCmd.Flags().BoolVar(&updateNoPull, "no-pull", false, "do not re-pull images before recreating")
	_ = stackUpdateCmd.MarkFlagRequired("file")

	stackCmd.AddCommand(stackLsCmd, stackStartCmd, stackStopCmd, stackRmCmd, stackRedeployCmd, stackUpdateCmd)
	rootCmd.AddCommand(stackCmd)
}
