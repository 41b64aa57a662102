// Package cli implements the pulse command-line interface.
//
// The root command is "pulse" and, with no subcommand, runs the live
// dashboard:
//
//	pulse [watch]      - poll the endpoint and show the dashboard
//	pulse once         - run one poll cycle and print the result
//	pulse init         - create .pulse.yaml
//	pulse agent        - serve /analyze snapshots for this host
//	pulse doctor       - check config, endpoint and terminal
//	pulse version      - print version information
//	pulse completion   - generate shell completion scripts
//
// Configuration comes from .pulse.yaml (see internal/config), PULSE_*
// environment variables and the persistent flags, in increasing order of
// precedence. Commands return *errors.Error values; Execute prints them and
// sets the exit code.
package cli
