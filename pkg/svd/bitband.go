package svd

import "log/slog"

// generateBitBand computes alias addresses for every register whose
// resolved address lies inside a configured bit-band region. Bit b of
// a register at addr maps to
//
//	alias = aliasBase + (addr - addressableBase)*32 + b*4
//
// one word per bit. Regions are consulted in configuration order and
// the first containing region wins. Registers outside all regions get
// no aliases; that is not an error, bit-band support is opt-in per
// region. Region validity is checked by Config.Validate before the
// pipeline runs.
func generateBitBand(t *tree, cfg *Config, log *slog.Logger) {
	var aliased int
	t.walk(func(n *node) {
		if n.kind != kindRegister {
			return
		}
		for _, region := range cfg.BitBandRegions {
			if !region.Contains(n.addr) {
				continue
			}
			byteOffset := n.addr - region.AddressableBase
			aliases := make([]uint64, n.effective.size)
			for b := range aliases {
				aliases[b] = region.AliasBase + byteOffset*32 + uint64(b)*4
			}
			n.bitband = aliases
			aliased++
			break
		}
	})

	log.Debug("bit-band aliases generated", "registers", aliased)
}
