// Command svd-explore is an interactive explorer for SVD documents.
//
// It parses a device description once, then offers a small shell over
// the resolved model: walk the peripheral tree, print registers and
// fields with resolved addresses, and look up addresses.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/svdkit/svd-go/pkg/svd"
)

func main() {
	in := flag.String("in", "", "Input SVD document")
	configPath := flag.String("config", "", "YAML configuration profile (bit-band regions)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: svd-explore -in <device.svd> [-config <regions.yaml>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*in, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(in, configPath string) error {
	cfg := svd.Config{}
	if configPath != "" {
		loaded, err := svd.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	dev, err := svd.ParseFile(in, cfg)
	if err != nil {
		return err
	}

	explorer, err := NewExplorer(dev)
	if err != nil {
		return err
	}
	defer explorer.Close()

	fmt.Printf("Loaded %s: %d peripherals. Type 'help' for commands.\n",
		dev.Name(), dev.PeripheralCount())
	return explorer.Run()
}
