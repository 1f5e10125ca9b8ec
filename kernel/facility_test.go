package kernel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Facility", func() {
	It("reserves the lowest-indexed idle slot", func() {
		f := newFacility(1, "f", 2)
		Expect(f.idleSlot()).To(Equal(0))
		f.reserve(0, "A", 0, 0)
		Expect(f.idleSlot()).To(Equal(1))
		f.reserve(1, "B", 0, 0)
		Expect(f.idleSlot()).To(Equal(-1))
	})

	It("orders waiters by descending priority with FIFO within a priority", func() {
		f := newFacility(1, "f", 1)
		f.reserve(0, "holder", 0, 0)

		f.enqueue(&waiter{token: "low-first", priority: 1, code: 10})
		f.enqueue(&waiter{token: "high", priority: 3, code: 11})
		f.enqueue(&waiter{token: "mid", priority: 2, code: 12})
		f.enqueue(&waiter{token: "low-second", priority: 1, code: 13})

		w1 := f.dequeueHead()
		w2 := f.dequeueHead()
		w3 := f.dequeueHead()
		w4 := f.dequeueHead()

		Expect([]Token{w1.token, w2.token, w3.token, w4.token}).To(Equal(
			[]Token{"high", "mid", "low-first", "low-second"},
		))
		Expect(f.dequeueHead()).To(BeNil())
	})

	It("finds the slot held by a token", func() {
		f := newFacility(1, "f", 2)
		f.reserve(0, "A", 0, 0)
		f.reserve(1, "B", 0, 0)
		Expect(f.slotHeldBy("A")).To(Equal(0))
		Expect(f.slotHeldBy("B")).To(Equal(1))
		Expect(f.slotHeldBy("C")).To(Equal(-1))
	})

	It("accumulates busy-time and queue-length integrals exactly", func() {
		f := newFacility(1, "f", 1)
		f.lastChangeTime = 0

		// busy for [0, 2) with 1 server
		f.touch(0)
		f.reserve(0, "A", 0, 0)

		f.touch(2)
		f.enqueue(&waiter{token: "B", priority: 0, code: 1}) // queued for [2, 5)

		f.touch(5)
		f.free(0)
		w := f.dequeueHead()
		f.reserve(0, w.token, w.priority, 5)

		f.touch(8)

		Expect(f.busyTimeIntegral).To(Equal(SimTime(8))) // busy the whole [0,8)
		Expect(f.queueLengthIntegral).To(Equal(SimTime(3))) // queued only on [2,5)
		Expect(f.releaseCount[0]).To(Equal(uint64(1)))
	})
})
