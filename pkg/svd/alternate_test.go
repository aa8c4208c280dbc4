package svd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdkit/svd-go/pkg/model"
)

func TestAlternateRegisterPair(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>SPI1</name><baseAddress>0x40013000</baseAddress>
			<registers>
				<register><name>DR</name><addressOffset>0xC</addressOffset></register>
				<register>
					<name>DR8</name><addressOffset>0xC</addressOffset><size>8</size>
					<alternateRegister>DR</alternateRegister>
				</register>
			</registers>
		</peripheral>`)

	dr := register(t, dev, "SPI1", "DR")
	dr8 := register(t, dev, "SPI1", "DR8")

	// The declared target is preserved; the group view is symmetric.
	assert.Empty(t, dr.AlternateOf())
	assert.Equal(t, "DR", dr8.AlternateOf())
	assert.Equal(t, []string{"DR8"}, dr.Alternates())
	assert.Equal(t, []string{"DR"}, dr8.Alternates())

	// Both share the address under different interpretations.
	assert.Equal(t, dr.Address(), dr8.Address())
}

func TestAlternateTransitiveGroup(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>ADC</name><baseAddress>0x40012000</baseAddress>
			<registers>
				<register><name>DATA</name><addressOffset>0x0</addressOffset></register>
				<register><name>DATA16</name><addressOffset>0x0</addressOffset><size>16</size>
					<alternateRegister>DATA</alternateRegister></register>
				<register><name>DATA8</name><addressOffset>0x0</addressOffset><size>8</size>
					<alternateRegister>DATA16</alternateRegister></register>
			</registers>
		</peripheral>`)

	data := register(t, dev, "ADC", "DATA")
	data8 := register(t, dev, "ADC", "DATA8")

	assert.ElementsMatch(t, []string{"DATA16", "DATA8"}, data.Alternates())
	assert.ElementsMatch(t, []string{"DATA", "DATA16"}, data8.Alternates())
}

func TestAlternatePeripheral(t *testing.T) {
	// Two interpretations of one block; their address blocks coincide
	// and must not trip the device-level overlap check.
	dev := parseDevice(t, `
		<peripheral><name>I2C1</name><baseAddress>0x40005400</baseAddress>
			<addressBlock><offset>0</offset><size>0x400</size><usage>registers</usage></addressBlock>
		</peripheral>
		<peripheral><name>SMBUS1</name><baseAddress>0x40005400</baseAddress>
			<alternatePeripheral>I2C1</alternatePeripheral>
			<addressBlock><offset>0</offset><size>0x400</size><usage>registers</usage></addressBlock>
		</peripheral>`)

	smbus, err := dev.GetPeripheral("SMBUS1")
	require.NoError(t, err)
	assert.Equal(t, "I2C1", smbus.AlternateOf())
	assert.Equal(t, []string{"SMBUS1"}, mustPeripheral(t, dev, "I2C1").Alternates())
}

func TestAlternateCluster(t *testing.T) {
	dev := parseDevice(t, `
		<peripheral><name>CAN1</name><baseAddress>0x40006400</baseAddress>
			<registers>
				<cluster><name>TX</name><addressOffset>0x180</addressOffset>
					<register><name>TIR</name><addressOffset>0x0</addressOffset></register>
				</cluster>
				<cluster><name>TX_FD</name><addressOffset>0x180</addressOffset>
					<alternateCluster>TX</alternateCluster>
					<register><name>TIR</name><addressOffset>0x0</addressOffset></register>
				</cluster>
			</registers>
		</peripheral>`)

	can, err := dev.GetPeripheral("CAN1")
	require.NoError(t, err)
	txfd, err := can.GetCluster("TX_FD")
	require.NoError(t, err)
	assert.Equal(t, "TX", txfd.AlternateOf())
	assert.Equal(t, []string{"TX_FD"}, mustCluster(t, dev, "CAN1", "TX").Alternates())
}

func TestAlternateMissingTarget(t *testing.T) {
	tests := []struct {
		name        string
		peripherals string
	}{
		{
			name: "register target",
			peripherals: `<peripheral><name>P</name><baseAddress>0x40000000</baseAddress>
				<registers><register><name>R</name><addressOffset>0x0</addressOffset>
					<alternateRegister>NOPE</alternateRegister></register></registers>
			</peripheral>`,
		},
		{
			name: "peripheral target",
			peripherals: `<peripheral><name>P</name><baseAddress>0x40000000</baseAddress>
				<alternatePeripheral>NOPE</alternatePeripheral>
			</peripheral>`,
		},
		{
			name: "target in another scope",
			peripherals: `<peripheral><name>P</name><baseAddress>0x40000000</baseAddress>
				<registers>
					<cluster><name>C</name><addressOffset>0x0</addressOffset>
						<register><name>INNER</name><addressOffset>0x0</addressOffset></register>
					</cluster>
					<register><name>R</name><addressOffset>0x10</addressOffset>
						<alternateRegister>INNER</alternateRegister></register>
				</registers>
			</peripheral>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseDeviceErr(t, tt.peripherals)
			require.ErrorIs(t, err, ErrMissingTarget)
		})
	}
}

func mustPeripheral(t *testing.T, dev *model.Device, name string) *model.Peripheral {
	t.Helper()
	p, err := dev.GetPeripheral(name)
	require.NoError(t, err)
	return p
}

func mustCluster(t *testing.T, dev *model.Device, peripheral, name string) *model.Cluster {
	t.Helper()
	c, err := mustPeripheral(t, dev, peripheral).GetCluster(name)
	require.NoError(t, err)
	return c
}
