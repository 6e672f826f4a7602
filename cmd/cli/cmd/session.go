package cmd

import (
	"io"

	"go.uber.org/zap"

	"dimscale/adapters/hcl"
	"dimscale/core/coherence"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/core/output"
	"dimscale/core/preferences"
	"dimscale/core/quantity"
	"dimscale/core/units"
	"dimscale/internal/config"
	"dimscale/internal/logging"
)

// session is the engine state a command runs against, resolved from the
// config file and the global flags
type session struct {
	checker *coherence.Checker
	storage numeric.Storage
	mode    numeric.Mode
	scope   preferences.Scope
	catalog *units.Catalog
	out     output.Formatter
	log     *zap.Logger
}

// newSession resolves settings; flags override the config file. An empty
// policy keeps the configured one.
func newSession(policy string) (*session, error) {
	cfg := config.Get()

	st := cfg.Arithmetic.Storage
	if storage != "" {
		st = storage
	}
	s, err := numeric.ParseStorage(st)
	if err != nil {
		return nil, err
	}

	mode := cfg.Mode()
	if lossy {
		mode = numeric.Lossy
	}

	p := cfg.Arithmetic.Policy
	if policy != "" {
		p = policy
	}
	pol, err := coherence.ParsePolicy(p)
	if err != nil {
		return nil, err
	}

	scope, err := loadScope(cfg)
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(outFormat)
	if err != nil {
		return nil, err
	}
	formatter, err := output.For(format)
	if err != nil {
		return nil, err
	}

	logging.Debug("session",
		zap.Stringer("storage", s),
		zap.Bool("lossy", mode == numeric.Lossy),
		zap.String("policy", string(pol)),
		zap.String("scope", scope.Name),
	)

	return &session{
		checker: coherence.NewChecker(coherence.WithPolicy(pol), coherence.WithMode(mode)),
		storage: s,
		mode:    mode,
		scope:   scope,
		catalog: units.Default(),
		out:     formatter,
		log:     logging.With(zap.Stringer("storage", s)),
	}, nil
}

func loadScope(cfg *config.Config) (preferences.Scope, error) {
	file, name := cfg.Scope.File, cfg.Scope.Name
	if scopeFile != "" {
		file = scopeFile
	}
	if scopeName != "" {
		name = scopeName
	}
	if file == "" {
		return hcl.Select(nil, name)
	}
	scopes, err := hcl.NewLoader(units.Default()).LoadFile(file)
	if err != nil {
		return preferences.Scope{}, err
	}
	return hcl.Select(scopes, name)
}

// quantity parses a value in the session storage and declares it in unit
func (s *session) quantity(value, unit string) (quantity.Quantity, error) {
	lit, err := s.catalog.Lookup(unit)
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := numeric.Parse(value, s.storage)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return lit.Declare(v, s.mode)
}

// express writes q in lit. A lossy session warns when the exact conversion
// would have failed, since the printed value is then truncated.
func (s *session) express(lit units.Literal, q quantity.Quantity) (numeric.Value, error) {
	if s.mode == numeric.Lossy && s.storage != numeric.Float {
		if _, err := lit.Express(q, numeric.Exact); errs.IsType(err, errs.TypePrecisionLoss) {
			s.log.Warn("inexact conversion truncated",
				zap.Stringer("value", q.Value()),
				zap.String("to", lit.Text),
			)
		}
	}
	return lit.Express(q, s.mode)
}

// render writes results in the session's output format
func (s *session) render(w io.Writer, results ...output.Result) error {
	return s.out.Render(w, results...)
}

// renderQuantity writes q, naming its unit when the catalog has one
func (s *session) renderQuantity(w io.Writer, q quantity.Quantity) error {
	return s.render(w, output.FromQuantity(q, s.catalog))
}
