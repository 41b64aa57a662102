package cli

import (
	"os"

	"github.com/rileyhilliard/pulse/internal/agent"
	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/spf13/cobra"
)

var agentAddrFlag string

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Serve /analyze snapshots for this machine",
	Long: `Sample this machine's CPU, load and memory and serve them at /analyze in
the format the dashboard reads. Also serves /healthz and Prometheus
/metrics.

The listen address comes from --addr, then agent.addr, then $PORT:

  pulse agent --addr :9090
  pulse --endpoint http://localhost:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr := agentAddr(cfg.Agent.Addr, cmd.Flags().Changed("addr"))

		log := logger.Default()
		srv := agent.NewServer(agent.NewHostSampler(cfg.Agent.SampleWindow), log)
		return srv.ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	agentCmd.Flags().StringVar(&agentAddrFlag, "addr", "", "listen address (default "+config.DefaultAgentAddr+")")
	rootCmd.AddCommand(agentCmd)
}

// agentAddr picks the listen address. $PORT only applies when nothing more
// specific than the default was configured.
func agentAddr(configured string, flagSet bool) string {
	if flagSet {
		return agentAddrFlag
	}
	if configured == config.DefaultAgentAddr {
		if port := os.Getenv("PORT"); port != "" {
			return ":" + port
		}
	}
	return configured
}
