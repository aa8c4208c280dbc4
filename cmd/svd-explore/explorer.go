package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/svdkit/svd-go/pkg/inspect"
	"github.com/svdkit/svd-go/pkg/model"
	"github.com/svdkit/svd-go/pkg/schema"
)

// errQuit signals a clean exit from the command loop.
var errQuit = errors.New("quit")

// Explorer drives the interactive session over one resolved device.
type Explorer struct {
	device    *model.Device
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance

	// cwd is the current path; empty means the device root.
	cwd inspect.Path
}

// NewExplorer creates an explorer with a readline prompt.
func NewExplorer(device *model.Device) (*Explorer, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          device.Name() + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Explorer{
		device:    device,
		inspector: inspect.NewInspector(device),
		formatter: inspect.NewFormatter(),
		rl:        rl,
	}, nil
}

// Close releases the readline instance.
func (e *Explorer) Close() error {
	if e.rl == nil {
		return nil
	}
	return e.rl.Close()
}

// Run reads and executes commands until exit or EOF.
func (e *Explorer) Run() error {
	for {
		line, err := e.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		out, err := e.Execute(line)
		if err == errQuit {
			return nil
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Print(out)
		}
	}
}

// Execute runs one command line and returns its output.
func (e *Explorer) Execute(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}

	switch args[0] {
	case "help":
		return helpText, nil
	case "ls":
		return e.cmdLs(args[1:])
	case "cd":
		return e.cmdCd(args[1:])
	case "info":
		return e.cmdInfo(args[1:])
	case "find":
		return e.cmdFind(args[1:])
	case "irq":
		return e.formatter.FormatInterrupts(e.device), nil
	case "exit", "quit":
		return "", errQuit
	default:
		return "", fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
}

const helpText = `Commands:
  ls [path]      List children of the current node or a path
  cd <path|..|/> Change the current node
  info [path]    Show the current node or a path in full
  find <addr>    Find the register covering an absolute address
  irq            Show the device interrupt table
  help           Show this help
  exit           Leave the explorer
`

func (e *Explorer) cmdLs(args []string) (string, error) {
	target := e.cwd
	if len(args) > 0 {
		var err error
		if target, err = e.resolveArg(args[0]); err != nil {
			return "", err
		}
	}

	names, err := e.inspector.Children(target)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	return strings.Join(names, "\n") + "\n", nil
}

func (e *Explorer) cmdCd(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: cd <path|..|/>")
	}

	switch args[0] {
	case "/":
		e.cwd = inspect.Path{}
	case "..":
		parent, ok := e.cwd.Parent()
		if !ok {
			e.cwd = inspect.Path{}
		} else {
			e.cwd = parent
		}
	default:
		target, err := e.resolveArg(args[0])
		if err != nil {
			return "", err
		}
		if _, err := e.inspector.Resolve(target); err != nil {
			return "", err
		}
		e.cwd = target
	}

	if e.rl != nil {
		prompt := e.device.Name()
		if len(e.cwd.Segments) > 0 {
			prompt += ":" + e.cwd.String()
		}
		e.rl.SetPrompt(prompt + "> ")
	}
	return "", nil
}

func (e *Explorer) cmdInfo(args []string) (string, error) {
	target := e.cwd
	if len(args) > 0 {
		var err error
		if target, err = e.resolveArg(args[0]); err != nil {
			return "", err
		}
	}

	if len(target.Segments) == 0 {
		return e.formatter.FormatDevice(e.device), nil
	}

	node, err := e.inspector.Resolve(target)
	if err != nil {
		return "", err
	}
	switch n := node.(type) {
	case *model.Peripheral:
		return e.formatter.FormatPeripheral(n), nil
	case *model.Cluster:
		out := fmt.Sprintf("%s  @ %s  %d bytes\n", n.Name(), inspect.Hex(n.Address()), n.ByteSize())
		return out, nil
	case *model.Register:
		return e.formatter.FormatRegister(n), nil
	case *model.Field:
		return e.formatter.FormatField(n) + "\n", nil
	}
	return "", inspect.ErrNotFound
}

func (e *Explorer) cmdFind(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: find <address>")
	}
	addr, err := schema.ParseInteger(args[0])
	if err != nil {
		return "", err
	}

	hits := e.inspector.FindByAddress(addr)
	if len(hits) == 0 {
		return fmt.Sprintf("no register covers %s\n", inspect.Hex(addr)), nil
	}

	var b strings.Builder
	for _, r := range hits {
		fmt.Fprintf(&b, "%s  %s\n", r.Path(), inspect.Hex(r.Address()))
	}
	return b.String(), nil
}

// resolveArg turns a command argument into an absolute path: paths
// starting with "/" are absolute, everything else is relative to the
// current node.
func (e *Explorer) resolveArg(arg string) (inspect.Path, error) {
	if strings.HasPrefix(arg, "/") {
		return inspect.ParsePath(arg)
	}
	rel, err := inspect.ParsePath(arg)
	if err != nil {
		return inspect.Path{}, err
	}
	target := e.cwd
	for _, seg := range rel.Segments {
		target = target.Child(seg)
	}
	return target, nil
}
