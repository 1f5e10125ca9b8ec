package kernel

import "github.com/sirupsen/logrus"

// Option configures a Simulator at construction time, modeled on the
// builder-style configuration used elsewhere in the ecosystem (e.g.
// simv5.Builder's WithParallelEngine/WithoutMonitoring/WithOutputFileName):
// small, composable functional options rather than a config file, since
// this kernel has no persistent or file-based configuration surface.
type Option func(*Simulator)

// WithLogger overrides the logrus.Logger used for diagnostic logging.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Simulator) {
		s.log = logger
	}
}

// WithFacilityIDGenerator overrides how facility ids are allocated. The
// default is sequential (NewSequentialFacilityIDGenerator); pass
// NewXIDFacilityIDGenerator() for globally unique ids.
func WithFacilityIDGenerator(gen FacilityIDGenerator) Option {
	return func(s *Simulator) {
		s.facilityIDGen = gen
	}
}
