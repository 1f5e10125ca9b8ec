// Package kernel implements a discrete-event simulation core modeled on
// MacDougall's smpl: a future-event list ordered by simulated time, and a
// facility abstraction (multi-server semaphore with priority queueing)
// through which simulated processes contend for shared resources.
//
// The kernel does not drive itself. A simulation program calls Schedule to
// place events on the future-event list and Cause in a loop to pull them
// out in time order; when handling an event the program calls Request to
// try to acquire a facility and Release to free one. Everything else
// (random-number generation, statistics reporting, input parsing) is the
// caller's responsibility.
//
// Example usage:
//
//	s := kernel.NewSimulator("queueing-demo")
//	fac, _ := s.Facility("server", 1)
//	s.Schedule(codeArrive, 0, tokenA)
//
//	for {
//		code, token, ok := s.Cause()
//		if !ok {
//			break
//		}
//		switch code {
//		case codeArrive:
//			if outcome, _ := s.Request(fac, token, 0); outcome == kernel.Reserved {
//				s.Schedule(codeDepart, 1.0, token)
//			}
//		case codeDepart:
//			s.Release(fac, token)
//		}
//	}
package kernel
