package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bleriot/skiff/internal/control"
)

var containerCmd = &cobra.Command{
	Use:     "container",
	Aliases: []string{"ctr"},
	Short:   "Control containers on an endpoint",
}

var containerLsAll bool

var containerLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List containers",
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

		containers := client.Containers(cmd.Context(), endpointID, containerLsAll)
		if containers == nil {
			return fmt.Errorf("failed to list containers on endpoint %d", endpointID)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tIMAGE\tSTATE\tSTATUS")
		for _, c := range containers {
			name := ""
			if len(c.Names) > 0 {
				name = strings.TrimPrefix(c.Names[0], "/")
			}
			fmt.Fprintf(w, "%.12s\t%s\t%s\t%s\t%s\n", c.ID, name, c.Image, c.State, c.Status)
		}
		return w.Flush()
	},
}

var containerInspectCmd = &cobra.Command{
	Use:   "inspect <id|name>",
	Short: "Inspect a container by id or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}

		endpointID, ok := client.EnsureEndpoint(cmd.Context(), endpoint)
		if !ok {
			return fmt.Errorf("no endpoint available")
		}

		details := client.ContainerDetails(cmd.Context(), endpointID, args[0])
		if details == nil {
			return fmt.Errorf("container %q not found", args[0])
		}

		image := ""
		if details.Config != nil {
			image = details.Config.Image
		}
		fmt.Printf("ID:    %s\nName:  %s\nImage: %s\n", details.ID, strings.TrimPrefix(details.Name, "/"), image)
		if details.State != nil {
			fmt.Printf("State: %s\n", details.State.Status)
		}
		return nil
	},
}

// simpleActionCommand builds a command for the actions that take no options.
func simpleActionCommand(action control.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <container-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newControlClient(cmd.Context())
			if err != nil {
				return err
			}
			ok := client.HandleContainer(cmd.Context(), control.ActionRequest{
				Action:      action,
				ContainerID: args[0],
				EndpointID:  endpoint,
			})
			if !ok {
				return fmt.Errorf("container %s failed", action)
			}
			return nil
		},
	}
}

var killSignal string

var containerKillCmd = &cobra.Command{
	Use:   "kill <container-id>",
	Short: "Kill a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		ok := client.HandleContainer(cmd.Context(), control.ActionRequest{
			Action:      control.ActionKill,
			ContainerID: args[0],
			EndpointID:  endpoint,
			Signal:      killSignal,
		})
		if !ok {
			return fmt.Errorf("container kill failed")
		}
		return nil
	},
}

var restartTimeoutMS float64

var containerRestartCmd = &cobra.Command{
	Use:   "restart <container-id>",
	Short: "Restart a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		req := control.ActionRequest{
			Action:      control.ActionRestart,
			ContainerID: args[0],
			EndpointID:  endpoint,
		}
		if cmd.Flags().Changed("timeout-ms") {
			req.TimeoutMS = &restartTimeoutMS
		}
		if !client.HandleContainer(cmd.Context(), req) {
			return fmt.Errorf("container restart failed")
		}
		return nil
	},
}

var (
	removeForce   bool
	removeVolumes bool
)

var containerRmCmd = &cobra.Command{
	Use:   "rm <container-id>",
	Short: "Remove a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		ok := client.HandleContainer(cmd.Context(), control.ActionRequest{
			Action:        control.ActionRemove,
			ContainerID:   args[0],
			EndpointID:    endpoint,
			Force:         removeForce,
			RemoveVolumes: removeVolumes,
		})
		if !ok {
			return fmt.Errorf("container remove failed")
		}
		return nil
	},
}

var containerCleanupCmd = &cobra.Command{
	Use:   "cleanup <name>",
	Short: "Stop and remove a container matched by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newControlClient(cmd.Context())
		if err != nil {
			return err
		}
		if !client.CleanupExistingContainer(cmd.Context(), args[0], endpoint) {
			return fmt.Errorf("no container matching %q was removed", args[0])
		}
		return nil
	},
}

func init() {
	containerLsCmd.Flags().BoolVarP(&containerLsAll, "all", "a", false, "include stopped containers")
	containerKillCmd.Flags().StringVar(&killSignal, "signal", "", "signal to send (default SIGKILL)")
	containerRestartCmd.Flags().Float64Var(&restartTimeoutMS, "timeout-ms", 0, "how long to wait for a graceful stop, in milliseconds")
	containerRmCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "force removal of a running container")
	containerRmCmd.Flags().BoolVarP(&removeVolumes, "volumes", "v", false, "remove anonymous volumes")

	containerCmd.AddCommand(
		containerLsCmd,
		containerInspectCmd,
		simpleActionCommand(control.ActionStart, "Start a container"),
		simpleActionCommand(control.ActionStop, "Stop a container"),
		simpleActionCommand(control.ActionPause, "Pause a container"),
		simpleActionCommand(control.ActionUnpause, "Unpause a container"),
		containerKillCmd,
		containerRestartCmd,
		containerRmCmd,
		containerCleanupCmd,
	)
	rootCmd.AddCommand(containerCmd)
}
