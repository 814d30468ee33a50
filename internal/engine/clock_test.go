package engine_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glowsim/internal/engine"
)

var _ = Describe("FrameClock", func() {
	It("fires the full tick budget then completes exactly once", func() {
		var mu sync.Mutex
		var ticks []int
		completions := 0

		c := engine.NewFrameClock(time.Millisecond, 20)
		c.Start(func(frame int) {
			mu.Lock()
			ticks = append(ticks, frame)
			mu.Unlock()
		}, func() {
			mu.Lock()
			completions++
			mu.Unlock()
		})

		Eventually(c.Done()).Should(BeClosed())

		mu.Lock()
		defer mu.Unlock()
		Expect(ticks).To(HaveLen(20))
		for i, f := range ticks {
			Expect(f).To(Equal(i))
		}
		Expect(completions).To(Equal(1))
	})

	It("stops ticking and suppresses completion after cancel", func() {
		var mu sync.Mutex
		count := 0
		completions := 0

		c := engine.NewFrameClock(time.Millisecond, 1000)
		c.Start(func(int) {
			mu.Lock()
			count++
			mu.Unlock()
		}, func() {
			mu.Lock()
			completions++
			mu.Unlock()
		})

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}).Should(BeNumerically(">=", 5))

		c.Cancel()
		Eventually(c.Done()).Should(BeClosed())

		mu.Lock()
		after := count
		mu.Unlock()

		Consistently(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}).Should(Equal(after))

		mu.Lock()
		defer mu.Unlock()
		Expect(completions).To(BeZero())
	})

	It("cancelling from inside a tick callback stops the loop", func() {
		var mu sync.Mutex
		var last int
		completions := 0

		var c *engine.FrameClock
		c = engine.NewFrameClock(time.Millisecond, 1000)
		c.Start(func(frame int) {
			mu.Lock()
			last = frame
			mu.Unlock()
			if frame == 3 {
				c.Cancel()
			}
		}, func() {
			mu.Lock()
			completions++
			mu.Unlock()
		})

		Eventually(c.Done()).Should(BeClosed())

		mu.Lock()
		defer mu.Unlock()
		Expect(last).To(Equal(3))
		Expect(completions).To(BeZero())
	})

	It("tolerates repeated cancels", func() {
		c := engine.NewFrameClock(time.Millisecond, 100)
		c.Start(func(int) {}, func() {})
		c.Cancel()
		c.Cancel()
		Eventually(c.Done()).Should(BeClosed())
	})
})
