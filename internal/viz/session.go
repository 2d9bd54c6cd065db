package viz

import (
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/step"
)

// NewSession resolves cfg against reg. The returned Source rebuilds the
// input from cfg on every call.
func NewSession(reg *catalog.Registry, cfg *config.Config) (Session, error) {
	family, err := catalog.ParseFamily(cfg.Family)
	if err != nil {
		return Session{}, err
	}
	entry, err := reg.Lookup(family, catalog.Name(cfg.Algorithm))
	if err != nil {
		return Session{}, err
	}
	in, err := cfg.Input()
	if err != nil {
		return Session{}, err
	}
	return Session{
		Family: family,
		Entry:  entry,
		Start:  in.Start,
		End:    in.End,
		Tree:   in.Tree,
		Source: func() (*step.Producer, error) {
			in, err := cfg.Input()
			if err != nil {
				return nil, err
			}
			seq, _, err := reg.New(family, entry.Name, in)
			if err != nil {
				return nil, err
			}
			return step.Pull(seq), nil
		},
	}, nil
}
