package svd_test

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdkit/svd-go/internal/fixtures"
	"github.com/svdkit/svd-go/pkg/model"
	"github.com/svdkit/svd-go/pkg/svd"
)

const minimalSVD = `<?xml version="1.0" encoding="utf-8"?>
<device>
  <name>TESTCHIP</name>
  <size>32</size>
  <peripherals>
    <peripheral>
      <name>SYSCTL</name>
      <baseAddress>0x40000000</baseAddress>
      <registers>
        <register>
          <name>CTRL</name>
          <addressOffset>0x0</addressOffset>
          <fields>
            <field>
              <name>EN</name>
              <bitOffset>0</bitOffset>
              <bitWidth>1</bitWidth>
            </field>
          </fields>
        </register>
      </registers>
    </peripheral>
  </peripherals>
</device>`

func TestParseMinimalDevice(t *testing.T) {
	dev, err := svd.Parse([]byte(minimalSVD), svd.Config{})
	require.NoError(t, err)

	assert.Equal(t, "TESTCHIP", dev.Name())
	require.Equal(t, 1, dev.PeripheralCount())

	p := dev.Peripherals()[0]
	assert.Equal(t, "SYSCTL", p.Name())

	regs := p.Registers()
	require.Len(t, regs, 1)
	ctrl := regs[0]
	assert.Equal(t, uint64(0x40000000), ctrl.Address())
	assert.Equal(t, uint64(32), ctrl.Size())

	fields := ctrl.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "EN", fields[0].Name())
	assert.Equal(t, uint64(0), fields[0].BitOffset())
	assert.Equal(t, uint64(1), fields[0].BitWidth())
	assert.Equal(t, "TESTCHIP/SYSCTL/CTRL/EN", fields[0].Path().String())
}

func TestParseIdempotent(t *testing.T) {
	data := fixtures.Document(t, filepath.Join("testdata", "devices.txtar"), "lite32f1.svd")

	first, err := svd.Parse(data, svd.Config{})
	require.NoError(t, err)
	second, err := svd.Parse(data, svd.Config{})
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second),
		"two parses of one document must be structurally identical")
}

func TestParseMalformedXML(t *testing.T) {
	_, err := svd.Parse([]byte("<device><name>X</name>"), svd.Config{})
	require.Error(t, err)
}

func TestParseFileMissing(t *testing.T) {
	_, err := svd.ParseFile(filepath.Join(t.TempDir(), "nope.svd"), svd.Config{})
	require.Error(t, err)
}

func TestParseCorpus(t *testing.T) {
	docs := fixtures.Load(t, filepath.Join("testdata", "devices.txtar"))
	require.NotEmpty(t, docs)

	for name, data := range docs {
		t.Run(name, func(t *testing.T) {
			dev, err := svd.Parse(data, svd.Config{})
			require.NoError(t, err)
			assert.NotZero(t, dev.PeripheralCount())
		})
	}
}

func TestParseCorpusDevice(t *testing.T) {
	data := fixtures.Document(t, filepath.Join("testdata", "devices.txtar"), "lite32f1.svd")
	dev, err := svd.Parse(data, svd.Config{})
	require.NoError(t, err)

	assert.Equal(t, "LITE32F1", dev.Name())
	require.NotNil(t, dev.CPU())
	assert.Equal(t, "CM3", dev.CPU().Name)

	// Derived peripheral carries the target's registers at its own base.
	tim2, err := dev.GetPeripheral("TIM2")
	require.NoError(t, err)
	ccr3, err := tim2.GetRegister("CCR3")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4000043c), ccr3.Address())

	// Device interrupt table is deduplicated and ordered by number.
	irqs := dev.Interrupts()
	require.Len(t, irqs, 3)
	assert.Equal(t, "DMA1_CH1", irqs[0].Name)
	assert.Equal(t, uint64(25), irqs[1].Value)
	assert.Equal(t, uint64(28), irqs[2].Value)

	// Expanded cluster instances resolve nested register addresses.
	dma, err := dev.GetPeripheral("DMA1")
	require.NoError(t, err)
	ch2, err := dma.GetCluster("CH2")
	require.NoError(t, err)
	cndtr, err := ch2.GetRegister("CNDTR")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x40020020), cndtr.Address())
}

func TestParseConcurrent(t *testing.T) {
	data := fixtures.Document(t, filepath.Join("testdata", "devices.txtar"), "uart-bitband.svd")
	cfg := svd.Config{
		EnableBitBand: true,
		BitBandRegions: []svd.BitBandRegion{{
			AddressableBase: 0x40000000,
			AddressableSize: 0x00100000,
			AliasBase:       0x42000000,
		}},
	}

	// Parse from many goroutines, then read one frozen device from many
	// goroutines; the race detector must stay quiet.
	devices := make([]*model.Device, 8)
	var wg sync.WaitGroup
	for i := range devices {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			dev, err := svd.Parse(data, cfg)
			assert.NoError(t, err)
			devices[i] = dev
		}()
	}
	wg.Wait()

	shared := devices[0]
	require.NotNil(t, shared)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range shared.Peripherals() {
				for _, r := range p.AllRegisters() {
					_ = r.Address()
					_ = r.Fields()
					_ = r.BitBandAliases()
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseBitBandFromProfile(t *testing.T) {
	cfg, err := svd.ParseConfig([]byte(`
enableBitBand: true
bitBandRegions:
  - addressableBase: 0x40000000
    addressableSize: 0x00100000
    aliasBase: 0x42000000
`))
	require.NoError(t, err)

	data := fixtures.Document(t, filepath.Join("testdata", "devices.txtar"), "uart-bitband.svd")
	dev, err := svd.Parse(data, *cfg)
	require.NoError(t, err)

	sr, err := mustP(t, dev, "UART0").GetRegister("SR")
	require.NoError(t, err)
	require.True(t, sr.HasBitBand())

	// SR sits at 0x40004004: alias of bit 1 is
	// 0x42000000 + 0x4004*32 + 1*4.
	alias, ok := sr.BitBandAlias(1)
	require.True(t, ok)
	assert.Equal(t, uint64(0x42080084), alias)
}

func mustP(t *testing.T, dev *model.Device, name string) *model.Peripheral {
	t.Helper()
	p, err := dev.GetPeripheral(name)
	require.NoError(t, err)
	return p
}
