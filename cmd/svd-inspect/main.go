// Command svd-inspect parses an SVD document and dumps the resolved
// device model.
//
// Usage:
//
//	svd-inspect -in device.svd [-config regions.yaml] [-format text|json|cbor]
//	            [-o out] [-peripheral NAME] [-irq]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/svdkit/svd-go/pkg/inspect"
	"github.com/svdkit/svd-go/pkg/snapshot"
	"github.com/svdkit/svd-go/pkg/svd"
)

func main() {
	in := flag.String("in", "", "Input SVD document")
	configPath := flag.String("config", "", "YAML configuration profile (bit-band regions)")
	format := flag.String("format", "text", "Output format: text, json, or cbor")
	out := flag.String("o", "", "Output file (default stdout)")
	peripheral := flag.String("peripheral", "", "Limit text output to one peripheral")
	irq := flag.Bool("irq", false, "Print the device interrupt table instead of the tree")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: svd-inspect -in <device.svd> [-config <regions.yaml>] [-format text|json|cbor] [-o <out>] [-peripheral <name>] [-irq]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*in, *configPath, *format, *out, *peripheral, *irq); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(in, configPath, format, out, peripheral string, irq bool) error {
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

	var data []byte
	switch format {
	case "text":
		formatter := inspect.NewFormatter()
		formatter.ShowBitBand = cfg.EnableBitBand
		switch {
		case irq:
			data = []byte(formatter.FormatInterrupts(dev))
		case peripheral != "":
			p, err := dev.GetPeripheral(peripheral)
			if err != nil {
				return err
			}
			data = []byte(formatter.FormatPeripheral(p))
		default:
			data = []byte(formatter.FormatDevice(dev))
		}
	case "json":
		if data, err = snapshot.EncodeJSON(snapshot.Take(dev)); err != nil {
			return err
		}
		data = append(data, '\n')
	case "cbor":
		if data, err = snapshot.EncodeCBOR(snapshot.Take(dev)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
