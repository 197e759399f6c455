// Package main provides the CLI entry point for trailcam.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/trailcam/internal/accel"
)

const appVersion = "0.1.0"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trailcam",
		Short:   "Batch object detection over camera-trap photos and video",
		Version: appVersion,
	}
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newDevicesCmd())
	return cmd
}

func newDevicesCmd() *cobra.Command {
	var accelTags []string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List the accelerator devices a run would enumerate",
		RunE: func(cmd *cobra.Command, args []string) error {
			requested := make([]accel.EpInfo, 0, len(accelTags))
			for _, tag := range accelTags {
				ep, err := accel.ParseEP(tag)
				if err != nil {
					return err
				}
				requested = append(requested, accel.EpInfo{Ep: ep})
			}

			hostname, _ := os.Hostname()
			fmt.Printf("host: %s\n", hostname)
			for _, d := range accel.EnumerateDevices(requested) {
				fmt.Printf("  %-8s %s\n", d.Info, d.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&accelTags, "accelerator", nil, "accelerator tag to probe (cpu, cuda, tensorrt, openvino, directml, coreml); repeatable")
	return cmd
}
