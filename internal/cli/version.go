package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/nono/internal/event"
)

// VersionInfo is the JSON payload of the version command.
type VersionInfo struct {
	Robot string `json:"robot"`
	Trace string `json:"trace"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print robot and trace format versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			info := VersionInfo{Robot: event.RobotVersion, Trace: event.TraceVersion}
			if formatter.JSON() {
				return formatter.Success(info)
			}
			fmt.Fprintf(formatter.Writer, "nono %s (trace format %s)\n", info.Robot, info.Trace)
			return nil
		},
	}
}
