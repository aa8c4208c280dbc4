package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdkit/svd-go/pkg/model"
)

func TestBuildRequiredAttributes(t *testing.T) {
	tests := []struct {
		name        string
		peripherals string
		wantPath    string
	}{
		{
			name:        "peripheral without name",
			peripherals: `<peripheral><baseAddress>0x40000000</baseAddress></peripheral>`,
			wantPath:    "TESTCHIP",
		},
		{
			name:        "peripheral without base address",
			peripherals: `<peripheral><name>UART0</name></peripheral>`,
			wantPath:    "TESTCHIP/UART0",
		},
		{
			name: "register without address offset",
			peripherals: `<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
				<registers><register><name>CR</name></register></registers></peripheral>`,
			wantPath: "TESTCHIP/UART0/CR",
		},
		{
			name: "cluster without address offset",
			peripherals: `<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
				<registers><cluster><name>CH</name></cluster></registers></peripheral>`,
			wantPath: "TESTCHIP/UART0/CH",
		},
		{
			name: "interrupt without value",
			peripherals: `<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
				<interrupt><name>UART0</name></interrupt></peripheral>`,
			wantPath: "TESTCHIP/UART0",
		},
		{
			name: "address block without usage",
			peripherals: `<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
				<addressBlock><offset>0</offset><size>0x400</size></addressBlock></peripheral>`,
			wantPath: "TESTCHIP/UART0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseDeviceErr(t, tt.peripherals)
			require.ErrorIs(t, err, ErrMissingAttribute)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantPath, schemaErr.Path.String())
		})
	}
}

func TestBuildMissingDeviceName(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0"?><device><size>32</size></device>`), Config{})
	require.ErrorIs(t, err, ErrMissingAttribute)
}

func TestBuildDuplicatePeripheralNames(t *testing.T) {
	err := parseDeviceErr(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress></peripheral>
		<peripheral><name>UART0</name><baseAddress>0x40001000</baseAddress></peripheral>`)
	require.ErrorIs(t, err, model.ErrDuplicateName)
}

func TestBuildClusterNotDerivable(t *testing.T) {
	err := parseDeviceErr(t, `
		<peripheral><name>DMA</name><baseAddress>0x40000000</baseAddress>
			<registers>
				<cluster><name>CH0</name><addressOffset>0x0</addressOffset></cluster>
				<cluster derivedFrom="CH0"><name>CH1</name><addressOffset>0x20</addressOffset></cluster>
			</registers>
		</peripheral>`)
	require.ErrorIs(t, err, ErrInvalidAttribute)
}

func TestBuildPropertyInheritance(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
			<size>16</size>
			<access>read-only</access>
			<resetValue>0x1234</resetValue>
			<registers>
				<register><name>SR</name><addressOffset>0x0</addressOffset></register>
				<register>
					<name>DR</name><addressOffset>0x4</addressOffset>
					<size>8</size>
					<access>read-write</access>
					<resetValue>0xFF</resetValue>
					<resetMask>0x0F</resetMask>
				</register>
			</registers>
		</peripheral>`)

	// SR inherits everything from the peripheral.
	sr := register(t, dev, "UART0", "SR")
	assert.Equal(t, uint64(16), sr.Size())
	assert.Equal(t, model.AccessReadOnly, sr.Access())
	assert.Equal(t, uint64(0x1234), sr.ResetValue())
	assert.Equal(t, uint64(0xFFFF), sr.ResetMask())

	// DR declares its own values.
	dr := register(t, dev, "UART0", "DR")
	assert.Equal(t, uint64(8), dr.Size())
	assert.Equal(t, model.AccessReadWrite, dr.Access())
	assert.Equal(t, uint64(0xFF), dr.ResetValue())
	assert.Equal(t, uint64(0x0F), dr.ResetMask())
}

func TestBuildDefaultsWithoutDeclarations(t *testing.T) {
	// Device declares only size; access, resetValue, and resetMask fall
	// back to the CMSIS defaults.
	dev := parseDevice(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
			<registers><register><name>CR</name><addressOffset>0x0</addressOffset></register></registers>
		</peripheral>`)

	cr := register(t, dev, "UART0", "CR")
	assert.Equal(t, uint64(32), cr.Size())
	assert.Equal(t, model.AccessReadWrite, cr.Access())
	assert.Equal(t, uint64(0), cr.ResetValue())
	assert.Equal(t, uint64(0xFFFFFFFF), cr.ResetMask())
}

func TestBuildSizeRequiredSomewhere(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0"?>
		<device><name>TESTCHIP</name><peripherals>
			<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
				<registers><register><name>CR</name><addressOffset>0x0</addressOffset></register></registers>
			</peripheral>
		</peripherals></device>`), Config{})
	require.ErrorIs(t, err, ErrMissingAttribute)
}

func TestBuildFieldBitRangeSpellings(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
			<registers><register><name>CR</name><addressOffset>0x0</addressOffset>
				<fields>
					<field><name>A</name><bitOffset>4</bitOffset><bitWidth>3</bitWidth></field>
					<field><name>B</name><lsb>8</lsb><msb>10</msb></field>
					<field><name>C</name><bitRange>[14:12]</bitRange></field>
				</fields>
			</register></registers>
		</peripheral>`)

	cr := register(t, dev, "UART0", "CR")
	for _, tt := range []struct {
		field  string
		offset uint64
	}{
		{"A", 4}, {"B", 8}, {"C", 12},
	} {
		f, err := cr.GetField(tt.field)
		require.NoError(t, err)
		assert.Equal(t, tt.offset, f.BitOffset(), tt.field)
		assert.Equal(t, uint64(3), f.BitWidth(), tt.field)
	}
}

func TestBuildFieldBitRangeMissing(t *testing.T) {
	err := parseDeviceErr(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
			<registers><register><name>CR</name><addressOffset>0x0</addressOffset>
				<fields><field><name>EN</name></field></fields>
			</register></registers>
		</peripheral>`)
	require.ErrorIs(t, err, ErrMissingAttribute)
}

func TestBuildFieldAccessOverride(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>UART0</name><baseAddress>0x40000000</baseAddress>
			<registers><register><name>SR</name><addressOffset>0x0</addressOffset>
				<access>read-only</access>
				<fields>
					<field><name>RXNE</name><bitOffset>0</bitOffset><bitWidth>1</bitWidth></field>
					<field><name>CLR</name><bitOffset>1</bitOffset><bitWidth>1</bitWidth><access>write-only</access></field>
				</fields>
			</register></registers>
		</peripheral>`)

	sr := register(t, dev, "UART0", "SR")
	rxne, err := sr.GetField("RXNE")
	require.NoError(t, err)
	assert.Equal(t, model.AccessReadOnly, rxne.Access())

	clr, err := sr.GetField("CLR")
	require.NoError(t, err)
	assert.Equal(t, model.AccessWriteOnly, clr.Access())
}

func TestBuildEnumeratedValues(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>RCC</name><baseAddress>0x40021000</baseAddress>
			<registers><register><name>CFGR</name><addressOffset>0x0</addressOffset>
				<fields><field><name>SW</name><bitOffset>0</bitOffset><bitWidth>2</bitWidth>
					<enumeratedValues>
						<enumeratedValue><name>HSI</name><value>0</value></enumeratedValue>
						<enumeratedValue><name>HSE</name><value>1</value></enumeratedValue>
						<enumeratedValue><name>PLL</name><value>2</value></enumeratedValue>
					</enumeratedValues>
				</field></fields>
			</register></registers>
		</peripheral>`)

	cfgr := register(t, dev, "RCC", "CFGR")
	sw, err := cfgr.GetField("SW")
	require.NoError(t, err)

	values := sw.EnumeratedValues()
	require.Len(t, values, 3)
	assert.Equal(t, "HSI", values[0].Name)
	assert.Equal(t, uint64(2), values[2].Value)
}
