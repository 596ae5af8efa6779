package sqldb

import (
	"github.com/smercier/catwalk/internal/config"
	"github.com/smercier/catwalk/internal/source"
)

// OpenRegistry opens every configured source in declaration order. A source
// whose handle cannot be opened is registered as unavailable so its failure
// shows up in the report instead of aborting the run.
func OpenRegistry(cfgs []config.SourceConfig) (*source.Registry, error) {
	reg := source.NewRegistry()
	for _, cfg := range cfgs {
		conn, err := Open(cfg.Driver, cfg.DSN, cfg.Schema)
		if err != nil {
			if addErr := reg.Add(cfg.Key, source.Unavailable(err)); addErr != nil {
				reg.Close()
				return nil, addErr
			}
			continue
		}
		if err := reg.Add(cfg.Key, conn); err != nil {
			conn.Close()
			reg.Close()
			return nil, err
		}
	}
	return reg, nil
}
