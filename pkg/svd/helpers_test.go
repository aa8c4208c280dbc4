package svd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svdkit/svd-go/pkg/model"
)

// deviceXML wraps peripheral XML in a minimal document with a 32-bit
// device-level register size.
func deviceXML(peripherals string) []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>
<device>
  <name>TESTCHIP</name>
  <size>32</size>
  <peripherals>` + peripherals + `</peripherals>
</device>`)
}

func parseDevice(t *testing.T, peripherals string) *model.Device {
	t.Helper()
	dev, err := Parse(deviceXML(peripherals), Config{})
	require.NoError(t, err)
	return dev
}

func parseDeviceErr(t *testing.T, peripherals string) error {
	t.Helper()
	_, err := Parse(deviceXML(peripherals), Config{})
	require.Error(t, err)
	return err
}

func register(t *testing.T, dev *model.Device, peripheral, name string) *model.Register {
	t.Helper()
	p, err := dev.GetPeripheral(peripheral)
	require.NoError(t, err)
	r, err := p.GetRegister(name)
	require.NoError(t, err)
	return r
}
