package inspect

import (
	"fmt"
	"strings"

	"github.com/svdkit/svd-go/pkg/model"
)

// Formatter renders resolved device trees as indented text.
type Formatter struct {
	// ShowFields includes register fields in tree output.
	ShowFields bool

	// ShowReset includes reset values on register lines.
	ShowReset bool

	// ShowBitBand includes the bit-band alias range on registers that
	// carry one.
	ShowBitBand bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowFields:  true,
		ShowReset:   true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatDevice renders the whole device tree.
func (f *Formatter) FormatDevice(d *model.Device) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", d.Name())
	if d.Vendor() != "" {
		fmt.Fprintf(&b, "  (%s)", d.Vendor())
	}
	b.WriteString("\n")
	for _, p := range d.Peripherals() {
		f.writePeripheral(&b, p, 1)
	}
	return b.String()
}

// FormatPeripheral renders one peripheral subtree.
func (f *Formatter) FormatPeripheral(p *model.Peripheral) string {
	var b strings.Builder
	f.writePeripheral(&b, p, 0)
	return b.String()
}

// FormatRegister renders one register line plus its fields.
func (f *Formatter) FormatRegister(r *model.Register) string {
	var b strings.Builder
	f.writeRegister(&b, r, 0)
	return b.String()
}

// FormatField renders one field line.
func (f *Formatter) FormatField(fl *model.Field) string {
	return f.fieldLine(fl)
}

// FormatInterrupts renders the device interrupt table.
func (f *Formatter) FormatInterrupts(d *model.Device) string {
	var b strings.Builder
	for _, irq := range d.Interrupts() {
		fmt.Fprintf(&b, "%3d  %s", irq.Value, irq.Name)
		if irq.Description != "" {
			fmt.Fprintf(&b, "  %s", irq.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (f *Formatter) writePeripheral(b *strings.Builder, p *model.Peripheral, depth int) {
	line := fmt.Sprintf("%s  @ %s", p.Name(), Hex(p.BaseAddress()))
	if p.AlternateOf() != "" {
		line += fmt.Sprintf("  (alternate of %s)", p.AlternateOf())
	}
	if p.Description() != "" {
		line += "  " + p.Description()
	}
	b.WriteString(f.Indent(depth, line) + "\n")

	for _, c := range p.Clusters() {
		f.writeCluster(b, c, depth+1)
	}
	for _, r := range p.Registers() {
		f.writeRegister(b, r, depth+1)
	}
}

func (f *Formatter) writeCluster(b *strings.Builder, c *model.Cluster, depth int) {
	line := fmt.Sprintf("%s/  @ %s", c.Name(), Hex(c.Address()))
	if c.AlternateOf() != "" {
		line += fmt.Sprintf("  (alternate of %s)", c.AlternateOf())
	}
	b.WriteString(f.Indent(depth, line) + "\n")

	for _, sub := range c.Clusters() {
		f.writeCluster(b, sub, depth+1)
	}
	for _, r := range c.Registers() {
		f.writeRegister(b, r, depth+1)
	}
}

func (f *Formatter) writeRegister(b *strings.Builder, r *model.Register, depth int) {
	line := fmt.Sprintf("%s  %s  %d bits  %s", r.Name(), Hex(r.Address()), r.Size(), r.Access())
	if f.ShowReset {
		line += fmt.Sprintf("  reset %s", Hex(r.ResetValue()))
	}
	if r.AlternateOf() != "" {
		line += fmt.Sprintf("  (alternate of %s)", r.AlternateOf())
	}
	if f.ShowBitBand && r.HasBitBand() {
		if alias, ok := r.BitBandAlias(0); ok {
			line += fmt.Sprintf("  bitband %s", Hex(alias))
		}
	}
	b.WriteString(f.Indent(depth, line) + "\n")

	if f.ShowFields {
		for _, fl := range r.Fields() {
			b.WriteString(f.Indent(depth+1, f.fieldLine(fl)) + "\n")
		}
	}
}

func (f *Formatter) fieldLine(fl *model.Field) string {
	line := fmt.Sprintf("%s  %s  %s", fl.Name(), BitRange(fl), fl.Access())
	for _, ev := range fl.EnumeratedValues() {
		if ev.IsDefault {
			continue
		}
		line += fmt.Sprintf("  %s=%d", ev.Name, ev.Value)
	}
	return line
}

// Hex formats an address the way SVD documents spell them.
func Hex(v uint64) string {
	return fmt.Sprintf("0x%08X", v)
}

// BitRange renders a field's bit range as "[msb:lsb]".
func BitRange(f *model.Field) string {
	return fmt.Sprintf("[%d:%d]", f.MSB(), f.LSB())
}
