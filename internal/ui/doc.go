// Package ui has the small terminal helpers shared by pulse's one-shot
// commands: status symbols, a semantic palette and a line spinner for slow
// steps such as probing an endpoint. The live dashboard lives in
// internal/monitor.
package ui
