package exchange

import "go.uber.org/zap"

// Option configures optional Simulator dependencies at construction. The
// zero value of every option is a sensible default: a no-op logger and a
// MarginModel that reports zero on every field.
type Option func(*Simulator)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMarginModel(m MarginModel) Option {
	return func(s *Simulator) {
		if m != nil {
			s.marginModel = m
		}
	}
}

func WithAccountId(id string) Option {
	return func(s *Simulator) { s.accountId = id }
}

func WithAccountNumber(number string) Option {
	return func(s *Simulator) { s.accountNumber = number }
}
