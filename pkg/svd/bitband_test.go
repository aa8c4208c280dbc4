package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cortexMRegion is the classic Cortex-M peripheral bit-band pair, used
// by the tests only; the library itself never defaults it.
var cortexMRegion = BitBandRegion{
	AddressableBase: 0x40000000,
	AddressableSize: 0x00100000,
	AliasBase:       0x42000000,
}

const bitbandPeripherals = `
	<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
		<registers>
			<register><name>CR</name><addressOffset>0x10</addressOffset></register>
		</registers>
	</peripheral>
	<peripheral><name>EXT</name><baseAddress>0x50000000</baseAddress>
		<registers>
			<register><name>CR</name><addressOffset>0x0</addressOffset></register>
		</registers>
	</peripheral>`

func TestBitBandAliasFormula(t *testing.T) {
	dev, err := Parse(deviceXML(bitbandPeripherals), Config{
		EnableBitBand:  true,
		BitBandRegions: []BitBandRegion{cortexMRegion},
	})
	require.NoError(t, err)

	cr := register(t, dev, "UART0", "CR")
	require.True(t, cr.HasBitBand())

	// 0x42000000 + 0x10*32 + 3*4
	alias, ok := cr.BitBandAlias(3)
	require.True(t, ok)
	assert.Equal(t, uint64(0x4200020C), alias)

	aliases := cr.BitBandAliases()
	require.Len(t, aliases, 32)
	assert.Equal(t, uint64(0x42000200), aliases[0])
}

func TestBitBandOutsideRegion(t *testing.T) {
	dev, err := Parse(deviceXML(bitbandPeripherals), Config{
		EnableBitBand:  true,
		BitBandRegions: []BitBandRegion{cortexMRegion},
	})
	require.NoError(t, err)

	// Outside every configured region: no aliases, no error.
	cr := register(t, dev, "EXT", "CR")
	assert.False(t, cr.HasBitBand())
	_, ok := cr.BitBandAlias(0)
	assert.False(t, ok)
}

func TestBitBandDisabled(t *testing.T) {
	dev, err := Parse(deviceXML(bitbandPeripherals), Config{})
	require.NoError(t, err)

	cr := register(t, dev, "UART0", "CR")
	assert.False(t, cr.HasBitBand())
}

func TestBitBandFirstRegionWins(t *testing.T) {
	narrow := BitBandRegion{
		AddressableBase: 0x40000000,
		AddressableSize: 0x100,
		AliasBase:       0x44000000,
	}
	dev, err := Parse(deviceXML(bitbandPeripherals), Config{
		EnableBitBand:  true,
		BitBandRegions: []BitBandRegion{narrow, cortexMRegion},
	})
	require.NoError(t, err)

	cr := register(t, dev, "UART0", "CR")
	alias, ok := cr.BitBandAlias(0)
	require.True(t, ok)
	assert.Equal(t, uint64(0x44000200), alias)
}

func TestBitBandRegionContains(t *testing.T) {
	assert.True(t, cortexMRegion.Contains(0x40000000))
	assert.True(t, cortexMRegion.Contains(0x400FFFFF))
	assert.False(t, cortexMRegion.Contains(0x40100000))
	assert.False(t, cortexMRegion.Contains(0x3FFFFFFF))
}

func TestBitBandConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		region BitBandRegion
	}{
		{
			name:   "zero size",
			region: BitBandRegion{AddressableBase: 0x40000000, AliasBase: 0x42000000},
		},
		{
			name: "unaligned alias base",
			region: BitBandRegion{
				AddressableBase: 0x40000000,
				AddressableSize: 0x100,
				AliasBase:       0x42000002,
			},
		},
		{
			name: "addressable region wraps",
			region: BitBandRegion{
				AddressableBase: 0xFFFFFFFFFFFFF000,
				AddressableSize: 0x2000,
				AliasBase:       0x42000000,
			},
		},
		{
			name: "alias region wraps",
			region: BitBandRegion{
				AddressableBase: 0x40000000,
				AddressableSize: 0x00100000,
				AliasBase:       0xFFFFFFFFFFF00000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(deviceXML(bitbandPeripherals), Config{
				EnableBitBand:  true,
				BitBandRegions: []BitBandRegion{tt.region},
			})
			require.ErrorIs(t, err, ErrBitBandConfig)
		})
	}
}

func TestBitBandRegionsIgnoredWhenDisabled(t *testing.T) {
	// Invalid regions do not matter while generation is off.
	cfg := Config{BitBandRegions: []BitBandRegion{{AliasBase: 1}}}
	require.NoError(t, cfg.Validate())
}
